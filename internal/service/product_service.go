package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/paras978/UASTWL-Backend/internal/model"
	"github.com/paras978/UASTWL-Backend/internal/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product with this name already exists")
)

// ImageSink persists uploaded image bytes and serves them back under a
// public path. The product record owns the returned filename; deletion is
// driven solely by the record's lifecycle.
type ImageSink interface {
	Save(src io.Reader, originalName string) (fileName string, publicPath string, err error)
	Delete(fileName string) error
}

// ProductService provides product CRUD coordinated with the image sink
type ProductService interface {
	Create(ctx context.Context, req model.ProductForm, image *multipart.FileHeader) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, id int64, req model.ProductForm, image *multipart.FileHeader) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	repo   repository.ProductRepository
	images ImageSink
	logger *logrus.Logger
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, images ImageSink, logger *logrus.Logger) ProductService {
	return &productService{repo: repo, images: images, logger: logger}
}

// saveImage stores the uploaded file and returns its generated filename and public path
func (s *productService) saveImage(fileHeader *multipart.FileHeader) (string, string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.images.Save(src, fileHeader.Filename)
}

// removeImage is the best-effort side of the record/file pairing; failures
// are logged, never surfaced.
func (s *productService) removeImage(fileName, reason string) {
	if err := s.images.Delete(fileName); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"file":   fileName,
			"reason": reason,
		}).Error("Failed to delete image file")
	}
}

// Create stores the image first (when present) and then writes the record.
// If the record write fails, the just-written file is removed again.
func (s *productService) Create(ctx context.Context, req model.ProductForm, image *multipart.FileHeader) (*model.Product, error) {
	now := time.Now()
	product := &model.Product{
		Name:      req.Name,
		Quantity:  *req.Quantity,
		Price:     *req.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if image != nil {
		fileName, publicPath, err := s.saveImage(image)
		if err != nil {
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		product.Image = &fileName
		product.Path = &publicPath
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if product.Image != nil {
			s.removeImage(*product.Image, "compensating failed product create")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateProduct
		}
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	return product, nil
}

// List returns all products; an empty store yields an empty slice
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products from repo: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// GetByID returns a single product
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Update overwrites every mutable field. A new image replaces the stored
// one: the record points at the new stored filename, and the old file is
// removed after the record write succeeds.
func (s *productService) Update(ctx context.Context, id int64, req model.ProductForm, image *multipart.FileHeader) (*model.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	var oldImage *string
	existing.Name = req.Name
	existing.Quantity = *req.Quantity
	existing.Price = *req.Price

	if image != nil {
		fileName, publicPath, err := s.saveImage(image)
		if err != nil {
			return nil, fmt.Errorf("failed to store product image: %w", err)
		}
		oldImage = existing.Image
		existing.Image = &fileName
		existing.Path = &publicPath
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		if image != nil {
			s.removeImage(*existing.Image, "compensating failed product update")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateProduct
		}
		return nil, fmt.Errorf("failed to update product in repo: %w", err)
	}

	if oldImage != nil && (existing.Image == nil || *oldImage != *existing.Image) {
		s.removeImage(*oldImage, "image replaced by product update")
	}
	return existing, nil
}

// Delete removes the record and then, asynchronously and best-effort,
// its image file. File cleanup failure does not fail the operation.
func (s *productService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product in repo: %w", err)
	}
	if deleted == nil {
		return ErrProductNotFound
	}

	if deleted.Image != nil {
		fileName := *deleted.Image
		go s.removeImage(fileName, "product deleted")
	}
	return nil
}
