package repository

import (
	"context"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CajaRepository interface {
	// CreateSesionTx inserts a new session inside tx. The partial unique
	// index on estado='ABIERTA' turns a lost open-race into a constraint
	// violation that rolls the tx back.
	CreateSesionTx(tx *gorm.DB, s *model.SesionCaja) error
	FindSesionAbierta(ctx context.Context) (*model.SesionCaja, error)
	FindSesionAbiertaTx(tx *gorm.DB) (*model.SesionCaja, error)
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error)
	UpdateSesionTx(tx *gorm.DB, s *model.SesionCaja) error
	// ListCerradas returns CLOSED sessions by fecha_cierre descending.
	// Nil bounds are open-ended; limit 0 means no cap.
	ListCerradas(ctx context.Context, from, to *time.Time, limit int) ([]model.SesionCaja, error)
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateSesionTx(tx *gorm.DB, s *model.SesionCaja) error {
	return tx.Create(s).Error
}

func (r *cajaRepo) FindSesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.SesionAbierta).
		Order("fecha_apertura DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindSesionAbiertaTx(tx *gorm.DB) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := tx.Where("estado = ?", model.SesionAbierta).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) UpdateSesionTx(tx *gorm.DB, s *model.SesionCaja) error {
	return tx.Save(s).Error
}

func (r *cajaRepo) ListCerradas(ctx context.Context, from, to *time.Time, limit int) ([]model.SesionCaja, error) {
	q := r.db.WithContext(ctx).
		Where("estado = ?", model.SesionCerrada).
		Order("fecha_cierre DESC")
	if from != nil {
		q = q.Where("fecha_cierre >= ?", *from)
	}
	if to != nil {
		q = q.Where("fecha_cierre < ?", *to)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var sesiones []model.SesionCaja
	err := q.Find(&sesiones).Error
	return sesiones, err
}
