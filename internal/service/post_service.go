package service

import (
	"context"
	"errors"

	"fitsocial/internal/domain"
	"fitsocial/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the author of this post")
)

// PostUpdate carries the optional fields of a post edit. Nil fields are left
// unchanged; ClearWorkout/ClearWeeklyWorkout drop the references.
type PostUpdate struct {
	Title              *string
	Content            *string
	WorkoutID          *primitive.ObjectID
	WeeklyWorkoutID    *primitive.ObjectID
	ClearWorkout       bool
	ClearWeeklyWorkout bool
}

// PostService manages the social feed. Reads are public; a post is only
// mutable and deletable by its author.
type PostService interface {
	CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	GetPostByID(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	UpdatePost(ctx context.Context, userID, postID primitive.ObjectID, update PostUpdate) (*domain.Post, error)
	DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error
}

// postService implements the PostService interface.
type postService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new instance of postService.
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	if post.Title == "" {
		return nil, ErrValidationFailed
	}
	if post.CreatedBy == primitive.NilObjectID {
		return nil, errors.New("post author is required")
	}

	postID, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) GetPostByID(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error) {
	return s.getPost(ctx, postID)
}

func (s *postService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID primitive.ObjectID, update PostUpdate) (*domain.Post, error) {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.WorkoutID != nil {
		post.WorkoutID = update.WorkoutID
	} else if update.ClearWorkout {
		post.WorkoutID = nil
	}
	if update.WeeklyWorkoutID != nil {
		post.WeeklyWorkoutID = update.WeeklyWorkoutID
	} else if update.ClearWeeklyWorkout {
		post.WeeklyWorkoutID = nil
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	if _, err := s.getOwnedPost(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) getPost(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) getOwnedPost(ctx context.Context, userID, postID primitive.ObjectID) (*domain.Post, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.CreatedBy != userID {
		return nil, ErrNotPostOwner
	}
	return post, nil
}
