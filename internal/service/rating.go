package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/repo"
	"github.com/freshkart/shopapi/internal/transport"
)

type RatingService struct {
	Repo *repo.GormRepo
}

// Rate records a 1-5 score for the product. A second rating from the same
// user replaces the first; there is never more than one per (user, product).
func (s *RatingService) Rate(ctx context.Context, userID, productID uuid.UUID, score int, review string) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	if _, err := s.Repo.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	rating := models.Rating{
		ProductID: productID,
		UserID:    userID,
		Rating:    score,
		Review:    review,
	}
	if err := s.Repo.UpsertRating(ctx, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// Aggregate returns every rating with the rater's display name, the mean
// rounded to one decimal place (0 with no ratings) and the count. The read
// path is lenient: an unknown product id yields the zero aggregate.
func (s *RatingService) Aggregate(ctx context.Context, productID uuid.UUID) (*transport.RatingsAggregate, error) {
	ratings, err := s.Repo.RatingsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	views := make([]transport.RatingView, 0, len(ratings))
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
		views = append(views, transport.RatingView{
			ID:        r.ID,
			Rating:    r.Rating,
			Review:    r.Review,
			UserName:  r.User.Name,
			CreatedAt: r.CreatedAt,
		})
	}

	avg := 0.0
	if len(ratings) > 0 {
		avg = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}

	return &transport.RatingsAggregate{
		Ratings:       views,
		AverageRating: avg,
		TotalRatings:  len(ratings),
	}, nil
}
