package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/maheshrc27/devjournal/internal/models"
	"github.com/maheshrc27/devjournal/internal/repository"
	"github.com/maheshrc27/devjournal/internal/transfer"
)

type ReactionService interface {
	Toggle(ctx context.Context, req *transfer.ReactionRequest) (*transfer.ReactionResult, error)
	Check(ctx context.Context, req *transfer.ReactionRequest) (*transfer.ReactionResult, error)
}

type reactionService struct {
	pr repository.PostRepository
	rr repository.ReactionRepository
}

func NewReactionService(pr repository.PostRepository, rr repository.ReactionRepository) ReactionService {
	return &reactionService{
		pr: pr,
		rr: rr,
	}
}

// Toggle adds the reaction when the user has not reacted with that type yet
// and removes it otherwise. Toggling twice leaves the count where it started.
func (s *reactionService) Toggle(ctx context.Context, req *transfer.ReactionRequest) (*transfer.ReactionResult, error) {
	reaction, err := reactionFromRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.visiblePost(ctx, reaction); err != nil {
		return nil, err
	}

	hasReacted, counts, err := s.rr.Toggle(ctx, reaction)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggling reaction: %w", err)
	}

	return &transfer.ReactionResult{
		HasReacted: hasReacted,
		Count:      counts[reaction.ReactionType],
		Reactions:  counts,
	}, nil
}

func (s *reactionService) Check(ctx context.Context, req *transfer.ReactionRequest) (*transfer.ReactionResult, error) {
	reaction, err := reactionFromRequest(req)
	if err != nil {
		return nil, err
	}

	post, err := s.visiblePost(ctx, reaction)
	if err != nil {
		return nil, err
	}

	hasReacted, err := s.rr.Exists(ctx, reaction)
	if err != nil {
		return nil, fmt.Errorf("checking reaction: %w", err)
	}

	return &transfer.ReactionResult{
		HasReacted: hasReacted,
		Count:      post.Reactions[reaction.ReactionType],
	}, nil
}

// visiblePost rejects reactions on posts the user cannot read.
func (s *reactionService) visiblePost(ctx context.Context, reaction *models.Reaction) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, reaction.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting post: %w", err)
	}
	if !post.IsVisibleTo(reaction.UserID) {
		return nil, ErrNotFound
	}
	return post, nil
}

func reactionFromRequest(req *transfer.ReactionRequest) (*models.Reaction, error) {
	if req == nil {
		return nil, newValidationError("postId is required")
	}

	reaction := &models.Reaction{
		PostID:       strings.TrimSpace(req.PostID),
		UserID:       strings.TrimSpace(req.UserID),
		ReactionType: strings.ToLower(strings.TrimSpace(req.ReactionType)),
	}

	var missing []string
	if reaction.PostID == "" {
		missing = append(missing, "postId")
	}
	if reaction.UserID == "" {
		missing = append(missing, "userId")
	}
	if reaction.ReactionType == "" {
		missing = append(missing, "reactionType")
	}
	if len(missing) > 0 {
		return nil, newValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}

	if !models.IsReactionType(reaction.ReactionType) {
		return nil, newValidationError("reactionType must be one of: %s", strings.Join(reactionTypeNames(), ", "))
	}
	return reaction, nil
}

func reactionTypeNames() []string {
	names := make([]string, 0, len(models.ReactionTypes))
	for name := range models.ReactionTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
