package store

import (
	"context"
	"errors"
	"time"

	"bipang_apung/model"

	"gorm.io/gorm"
)

// GormStore implements OrderStore and AdminStore on top of gorm/postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, o *model.Order) error {
	return s.db.WithContext(ctx).Create(o).Error
}

func (s *GormStore) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	var o model.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&o, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *GormStore) List(ctx context.Context, phone string) ([]model.Order, error) {
	var orders []model.Order
	q := s.db.WithContext(ctx).Preload("Items").Order("created_at desc")
	if phone != "" {
		q = q.Where("phone = ?", phone)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) Update(ctx context.Context, orderID string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, orderID string) error {
	res := s.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *GormStore) ListStale(ctx context.Context, statuses []model.OrderStatus, before time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Where("payment_method = ? AND status IN ? AND created_at < ?", model.PaymentOnline, statuses, before).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) PasswordHash(ctx context.Context) (string, error) {
	var admin model.AdminAccount
	err := s.db.WithContext(ctx).First(&admin, "name = ?", "login").Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAdminNotFound
		}
		return "", err
	}
	return admin.PasswordHash, nil
}
