package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
)

// GetInfoPerusahaan returns the singleton contact record, creating a default
// row when the table is empty so public reads always succeed.
func (p *Pool) GetInfoPerusahaan(ctx context.Context) (*InfoPerusahaan, error) {
	var row InfoPerusahaan
	err := p.gdb.WithContext(ctx).First(&row, "id = ?", InfoPerusahaanID).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, ErrNoRows) {
		return nil, fmt.Errorf("query info perusahaan: %w", err)
	}

	row = InfoPerusahaan{
		ID:              InfoPerusahaanID,
		AlamatKantor:    "PT Bosowa Bandar Indonesia",
		NoHP:            "(0411) 123456",
		Email:           "info@bbi.co.id",
		GoogleMapsEmbed: "",
		UpdatedAt:       globaltime.UTC(),
	}
	if err := p.gdb.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("seed info perusahaan: %w", err)
	}
	return &row, nil
}

// UpsertInfoPerusahaan updates the fixed-id row, creating it when absent.
func (p *Pool) UpsertInfoPerusahaan(ctx context.Context, info *InfoPerusahaan) error {
	info.ID = InfoPerusahaanID
	info.UpdatedAt = globaltime.UTC()
	err := p.gdb.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(info).Error
	if err != nil {
		return fmt.Errorf("upsert info perusahaan: %w", err)
	}
	return nil
}

func (p *Pool) ListCabang(ctx context.Context) ([]InfoCabang, error) {
	var rows []InfoCabang
	err := p.gdb.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query cabang: %w", err)
	}
	return rows, nil
}

func (p *Pool) GetCabang(ctx context.Context, id string) (*InfoCabang, error) {
	var row InfoCabang
	if err := p.gdb.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (p *Pool) CreateCabang(ctx context.Context, cabang *InfoCabang) error {
	if cabang.ID == "" {
		cabang.ID = uuid.NewString()
	}
	now := globaltime.UTC()
	cabang.CreatedAt = now
	cabang.UpdatedAt = now
	if err := p.gdb.WithContext(ctx).Create(cabang).Error; err != nil {
		return fmt.Errorf("insert cabang: %w", err)
	}
	return nil
}

func (p *Pool) SaveCabang(ctx context.Context, cabang *InfoCabang) error {
	cabang.UpdatedAt = globaltime.UTC()
	err := p.gdb.WithContext(ctx).
		Model(&InfoCabang{}).
		Where("id = ?", cabang.ID).
		Select("nama", "alamat", "no_telp", "updated_at").
		Updates(cabang).Error
	if err != nil {
		return fmt.Errorf("update cabang: %w", err)
	}
	return nil
}

func (p *Pool) DeleteCabang(ctx context.Context, id string) error {
	res := p.gdb.WithContext(ctx).Where("id = ?", id).Delete(&InfoCabang{})
	if res.Error != nil {
		return fmt.Errorf("delete cabang: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoRows
	}
	return nil
}
