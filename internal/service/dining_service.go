package service

import (
	"context"
	"errors"
	"fmt"

	"fitsocial/internal/dining"
)

// ErrDiningUnavailable covers failures of the dining feed or the
// recommendation model. Details are logged server-side, never returned.
var ErrDiningUnavailable = errors.New("dining recommendations are unavailable")

// MenuFetcher is the slice of dining.MenuClient the service needs.
type MenuFetcher interface {
	FetchMenus(ctx context.Context) (dining.Menus, error)
}

// DiningService produces meal recommendations for a training goal from the
// live dining menus.
type DiningService interface {
	TopMeals(ctx context.Context, goal string, topN int) (string, error)
}

// diningService implements the DiningService interface.
type diningService struct {
	menus       MenuFetcher
	recommender dining.Recommender
}

// NewDiningService creates a new instance of diningService.
func NewDiningService(menus MenuFetcher, recommender dining.Recommender) DiningService {
	return &diningService{
		menus:       menus,
		recommender: recommender,
	}
}

func (s *diningService) TopMeals(ctx context.Context, goal string, topN int) (string, error) {
	if goal == "" {
		goal = "cutting"
	}
	if topN <= 0 {
		topN = 10
	}

	menus, err := s.menus.FetchMenus(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiningUnavailable, err)
	}

	recommendation, err := s.recommender.TopMeals(ctx, menus, goal, topN)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiningUnavailable, err)
	}
	return recommendation, nil
}
