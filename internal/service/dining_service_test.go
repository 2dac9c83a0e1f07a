package service

import (
	"context"
	"errors"
	"testing"

	"fitsocial/internal/dining"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMenuFetcher struct {
	menus dining.Menus
	err   error
}

func (m *mockMenuFetcher) FetchMenus(ctx context.Context) (dining.Menus, error) {
	return m.menus, m.err
}

type mockRecommender struct {
	gotGoal string
	gotTopN int
	result  string
	err     error
}

func (m *mockRecommender) TopMeals(ctx context.Context, menus dining.Menus, goal string, topN int) (string, error) {
	m.gotGoal = goal
	m.gotTopN = topN
	return m.result, m.err
}

func TestTopMealsDefaults(t *testing.T) {
	fetcher := &mockMenuFetcher{menus: dining.Menus{"North Star": {"Grilled Chicken"}}}
	recommender := &mockRecommender{result: "1. Grilled Chicken"}
	svc := NewDiningService(fetcher, recommender)

	result, err := svc.TopMeals(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, "1. Grilled Chicken", result)
	assert.Equal(t, "cutting", recommender.gotGoal)
	assert.Equal(t, 10, recommender.gotTopN)
}

func TestTopMealsPassesThroughGoal(t *testing.T) {
	fetcher := &mockMenuFetcher{menus: dining.Menus{}}
	recommender := &mockRecommender{result: "ok"}
	svc := NewDiningService(fetcher, recommender)

	_, err := svc.TopMeals(context.Background(), "bulking", 5)
	require.NoError(t, err)
	assert.Equal(t, "bulking", recommender.gotGoal)
	assert.Equal(t, 5, recommender.gotTopN)
}

func TestTopMealsFeedFailure(t *testing.T) {
	fetcher := &mockMenuFetcher{err: errors.New("feed down")}
	svc := NewDiningService(fetcher, &mockRecommender{})

	_, err := svc.TopMeals(context.Background(), "cutting", 10)
	assert.ErrorIs(t, err, ErrDiningUnavailable)
}

func TestTopMealsRecommenderFailure(t *testing.T) {
	fetcher := &mockMenuFetcher{menus: dining.Menus{}}
	recommender := &mockRecommender{err: errors.New("model timeout")}
	svc := NewDiningService(fetcher, recommender)

	_, err := svc.TopMeals(context.Background(), "cutting", 10)
	assert.ErrorIs(t, err, ErrDiningUnavailable)
}
