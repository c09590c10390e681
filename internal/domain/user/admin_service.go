// internal/domain/user/admin_service.go
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// AdminService handles admin user management operations
type AdminService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:     db,
		config: cfg,
	}
}

// UserListRequest represents user list query parameters
type UserListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
	Role   string `form:"role"`
}

// UserListResponse represents a user page with order stats
type UserListResponse struct {
	Users      []UserWithStats `json:"users"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// UserWithStats represents a user with order statistics
type UserWithStats struct {
	User
	OrderCount  int64      `json:"order_count"`
	TotalSpent  int64      `json:"total_spent"`
	LastOrderAt *time.Time `json:"last_order_at"`
}

// UpdateRoleRequest represents a role change request
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// GetUsers retrieves users with filtering and pagination
func (s *AdminService) GetUsers(req *UserListRequest) (*UserListResponse, error) {
	var users []User
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	query := s.db.Model(&User{})

	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}

	if req.Role != "" && req.Role != "all" {
		if !IsKnownRole(req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, req.Role)
		}
		query = query.Where("role = ?", req.Role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}

	usersWithStats := make([]UserWithStats, 0, len(users))
	for _, u := range users {
		stats := s.getUserStats(u.ID)
		stats.User = u
		stats.User.Password = ""
		usersWithStats = append(usersWithStats, stats)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &UserListResponse{
		Users:      usersWithStats,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser retrieves a single user by ID with stats
func (s *AdminService) GetUser(userID uint) (*UserWithStats, error) {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	stats := s.getUserStats(userID)
	stats.User = u
	stats.User.Password = ""

	return &stats, nil
}

// UpdateUserRole sets a user's role. Admins cannot demote themselves and the
// last admin cannot be demoted.
func (s *AdminService) UpdateUserRole(userID uint, req *UpdateRoleRequest, adminID uint) (*User, error) {
	if !IsKnownRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", apperr.ErrValidation, RoleCustomer, RoleAdmin)
	}

	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if req.Role != RoleAdmin {
		if userID == adminID {
			return nil, fmt.Errorf("%w: cannot change your own role", apperr.ErrValidation)
		}

		var adminCount int64
		s.db.Model(&User{}).Where("role = ? AND id != ?", RoleAdmin, userID).Count(&adminCount)
		if u.IsAdmin() && adminCount == 0 {
			return nil, fmt.Errorf("%w: at least one admin must remain", apperr.ErrValidation)
		}
	}

	if err := s.db.Model(&u).Update("role", req.Role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	u.Password = ""
	return &u, nil
}

// getUserStats gathers order statistics for a user
func (s *AdminService) getUserStats(userID uint) UserWithStats {
	var stats UserWithStats

	var orderStats struct {
		OrderCount  int64
		TotalSpent  int64
		LastOrderAt *time.Time
	}
	err := s.db.Raw(`
		SELECT
			COUNT(*) as order_count,
			COALESCE(SUM(total), 0) as total_spent,
			MAX(created_at) as last_order_at
		FROM orders
		WHERE user_id = ? AND status != 'cancelled' AND deleted_at IS NULL
	`, userID).Scan(&orderStats).Error
	if err == nil {
		stats.OrderCount = orderStats.OrderCount
		stats.TotalSpent = orderStats.TotalSpent
		stats.LastOrderAt = orderStats.LastOrderAt
	}

	return stats
}
