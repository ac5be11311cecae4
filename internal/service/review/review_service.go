// Package review 提供酒店评价服务
package review

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// ReviewService 评价服务
type ReviewService struct {
	db         *gorm.DB
	reviewRepo *repository.ReviewRepository
	hotelRepo  *repository.HotelRepository
}

// NewReviewService 创建评价服务
func NewReviewService(db *gorm.DB, reviewRepo *repository.ReviewRepository, hotelRepo *repository.HotelRepository) *ReviewService {
	return &ReviewService{
		db:         db,
		reviewRepo: reviewRepo,
		hotelRepo:  hotelRepo,
	}
}

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	HotelID int64   `json:"hotel_id" binding:"required"`
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// UpdateReviewRequest 更新评价请求
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// ReviewInfo 评价信息
type ReviewInfo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	HotelID   int64     `json:"hotel_id"`
	HotelName string    `json:"hotel_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingSummary 评分汇总
type RatingSummary struct {
	HotelID       int64   `json:"hotel_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// CreateReview 创建评价
// 每个用户对同一酒店只能评价一次
func (s *ReviewService) CreateReview(ctx context.Context, userID int64, req *CreateReviewRequest) (*ReviewInfo, error) {
	if req.Rating < models.RatingMin || req.Rating > models.RatingMax {
		return nil, errors.ErrRatingOutOfRange
	}

	hotel, err := s.hotelRepo.GetByID(ctx, req.HotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if hotel.Status != models.HotelStatusActive {
		return nil, errors.ErrHotelNotFound
	}

	exists, err := s.reviewRepo.ExistsByUserAndHotel(ctx, userID, req.HotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrAlreadyExists.WithMessage("已评价过该酒店")
	}

	review := &models.Review{
		UserID:  userID,
		HotelID: req.HotelID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return s.convertReviewInfo(review), nil
}

// UpdateReview 更新自己的评价
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, userID int64, req *UpdateReviewRequest) (*ReviewInfo, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReviewNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if review.UserID != userID {
		return nil, errors.ErrPermissionDenied
	}

	if req.Rating != nil {
		if *req.Rating < models.RatingMin || *req.Rating > models.RatingMax {
			return nil, errors.ErrRatingOutOfRange
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.convertReviewInfo(review), nil
}

// DeleteReview 删除自己的评价（管理员可删除任意评价）
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID int64, isAdmin bool) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if !isAdmin && review.UserID != userID {
		return errors.ErrPermissionDenied
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}

// GetHotelReviews 获取酒店评价列表
func (s *ReviewService) GetHotelReviews(ctx context.Context, hotelID int64, page, pageSize int) ([]*ReviewInfo, int64, error) {
	p := utils.Pagination{Page: page, PageSize: pageSize}
	p.Normalize()

	reviews, total, err := s.reviewRepo.ListByHotel(ctx, hotelID, p.GetOffset(), p.GetLimit())
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	var result []*ReviewInfo
	for _, review := range reviews {
		result = append(result, s.convertReviewInfo(review))
	}
	return result, total, nil
}

// GetUserReviews 获取用户评价列表
func (s *ReviewService) GetUserReviews(ctx context.Context, userID int64, page, pageSize int) ([]*ReviewInfo, int64, error) {
	p := utils.Pagination{Page: page, PageSize: pageSize}
	p.Normalize()

	reviews, total, err := s.reviewRepo.ListByUser(ctx, userID, p.GetOffset(), p.GetLimit())
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	var result []*ReviewInfo
	for _, review := range reviews {
		result = append(result, s.convertReviewInfo(review))
	}
	return result, total, nil
}

// GetRatingSummary 获取酒店评分汇总
func (s *ReviewService) GetRatingSummary(ctx context.Context, hotelID int64) (*RatingSummary, error) {
	_, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	avg, count, err := s.hotelRepo.AverageRating(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return &RatingSummary{
		HotelID:       hotelID,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

// convertReviewInfo 转换评价信息
func (s *ReviewService) convertReviewInfo(review *models.Review) *ReviewInfo {
	info := &ReviewInfo{
		ID:        review.ID,
		UserID:    review.UserID,
		HotelID:   review.HotelID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		info.UserName = review.User.Name
	}
	if review.Hotel != nil {
		info.HotelName = review.Hotel.Name
	}
	return info
}
