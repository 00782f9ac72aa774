// Package engine implements the content-graph consistency core: it keeps
// denormalized counters, mention records and notification fan-out correct
// across posts, comments, likes and follows. Every logical mutation runs in
// exactly one transaction; the five consistency mechanisms (counters,
// notifications, mentions, the like toggle and the soft-delete cascade)
// share that transaction and any failure rolls the whole operation back.
package engine

import (
	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Engine is the mutation orchestrator. It owns the transaction boundary;
// no mechanism beneath it commits or rolls back on its own.
type Engine struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

// New creates an Engine over the given database handle
func New(db *gorm.DB) *Engine {
	return &Engine{
		db:        db,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// ContentKind distinguishes the two likeable/mentionable content types
type ContentKind string

const (
	ContentPost    ContentKind = "post"
	ContentComment ContentKind = "comment"
)

// ContentRef identifies a content item by kind and internal id. Constructing
// one through PostRef or CommentRef keeps the post-XOR-comment union valid
// by construction.
type ContentRef struct {
	Kind ContentKind
	ID   uint
}

// PostRef references a post
func PostRef(id uint) ContentRef { return ContentRef{Kind: ContentPost, ID: id} }

// CommentRef references a comment
func CommentRef(id uint) ContentRef { return ContentRef{Kind: ContentComment, ID: id} }

func (ref ContentRef) refType() models.RefType {
	if ref.Kind == ContentComment {
		return models.RefTypeComment
	}
	return models.RefTypePost
}
