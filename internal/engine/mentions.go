package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adnan-k/sociograph/backend/internal/models"
	"github.com/adnan-k/sociograph/backend/internal/repositories"
	"gorm.io/gorm"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]+)`)

// extractMentions scans a content body for @handle tokens, resolves them to
// users (excluding the actor) in one batch query, and records a mention plus
// a notification for each handle not already mentioned by the actor on this
// content item. Skipping already-recorded mentions makes re-running
// extraction on an edited body idempotent while still picking up newly added
// handles.
//
// Runs inside the parent mutation's transaction; any failure aborts the
// whole parent operation.
func (e *Engine) extractMentions(tx *gorm.DB, actorID uint, target ContentRef, body string) error {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	handles := make([]string, 0, len(matches))
	for _, m := range matches {
		h := strings.ToLower(m[1])
		if !seen[h] {
			seen[h] = true
			handles = append(handles, h)
		}
	}

	resolved, err := repositories.NewPostgresUserRepository(tx).GetUsersByUsernames(handles)
	if err != nil {
		return fmt.Errorf("resolve mention handles: %w", err)
	}

	candidateIDs := make([]uint, 0, len(resolved))
	for _, u := range resolved {
		if u.ID != actorID { // no self-mention
			candidateIDs = append(candidateIDs, u.ID)
		}
	}
	if len(candidateIDs) == 0 {
		return nil
	}

	mentions := repositories.NewPostgresMentionRepository(tx)
	var existingIDs []uint
	switch target.Kind {
	case ContentPost:
		existingIDs, err = mentions.GetMentionedUserIDsForPost(actorID, target.ID, candidateIDs)
	case ContentComment:
		existingIDs, err = mentions.GetMentionedUserIDsForComment(actorID, target.ID, candidateIDs)
	}
	if err != nil {
		return fmt.Errorf("load existing mentions: %w", err)
	}
	already := make(map[uint]bool, len(existingIDs))
	for _, id := range existingIDs {
		already[id] = true
	}

	for _, userID := range candidateIDs {
		if already[userID] {
			continue
		}
		mention := &models.Mention{FromUserID: actorID, MentionedUserID: userID}
		targetID := target.ID
		switch target.Kind {
		case ContentPost:
			mention.PostID = &targetID
		case ContentComment:
			mention.CommentID = &targetID
		}
		if err := mentions.CreateMention(mention); err != nil {
			return fmt.Errorf("record mention of user %d: %w", userID, err)
		}
		if err := notify(tx, MentionEvent{Target: target}, actorID, userID); err != nil {
			return err
		}
	}
	return nil
}
