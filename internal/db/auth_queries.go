package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/muhtegaralfikri/bbi-backend/internal/globaltime"
)

// AuthSession is a session row joined with its admin for middleware use.
type AuthSession struct {
	SessionID   string
	AdminID     string
	Email       string
	NamaLengkap string
	ExpiresAt   time.Time
	LastSeenAt  time.Time
}

func (p *Pool) CreateAdmin(ctx context.Context, admin *Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	now := globaltime.UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if err := p.gdb.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (p *Pool) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	var row Admin
	if err := p.gdb.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (p *Pool) GetAdminByID(ctx context.Context, id string) (*Admin, error) {
	var row Admin
	if err := p.gdb.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (p *Pool) CountAdmins(ctx context.Context) (int64, error) {
	var total int64
	if err := p.gdb.WithContext(ctx).Model(&Admin{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return total, nil
}

func (p *Pool) SetAdminLastLogin(ctx context.Context, adminID string, loginAt time.Time) error {
	err := p.gdb.WithContext(ctx).
		Model(&Admin{}).
		Where("id = ?", adminID).
		Updates(map[string]any{"last_login_at": loginAt, "updated_at": globaltime.UTC()}).Error
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (p *Pool) CreateSession(ctx context.Context, adminID string, expiresAt, now time.Time) (string, error) {
	session := AdminSession{
		SessionID:  uuid.NewString(),
		AdminID:    adminID,
		ExpiresAt:  expiresAt,
		LastSeenAt: now,
		CreatedAt:  now,
	}
	if err := p.gdb.WithContext(ctx).Create(&session).Error; err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return session.SessionID, nil
}

func (p *Pool) GetSession(ctx context.Context, sessionID string) (*AuthSession, error) {
	var row AuthSession
	err := p.gdb.WithContext(ctx).
		Table("admin_sessions").
		Select("admin_sessions.session_id, admin_sessions.admin_id, admins.email, admins.nama_lengkap, admin_sessions.expires_at, admin_sessions.last_seen_at").
		Joins("JOIN admins ON admins.id = admin_sessions.admin_id").
		Where("admin_sessions.session_id = ?", sessionID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (p *Pool) TouchSession(ctx context.Context, sessionID string, seenAt time.Time) error {
	err := p.gdb.WithContext(ctx).
		Model(&AdminSession{}).
		Where("session_id = ?", sessionID).
		Update("last_seen_at", seenAt).Error
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

func (p *Pool) DeleteSession(ctx context.Context, sessionID string) error {
	err := p.gdb.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&AdminSession{}).Error
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (p *Pool) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := p.gdb.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&AdminSession{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
