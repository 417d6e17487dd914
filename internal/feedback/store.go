// Package feedback implements a flat-file tracker for operator feedback:
// issues, improvements, and questions filed against the workspace tooling.
package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentic-framework/agentic-core/internal/log"
)

// Type categorizes a feedback item.
type Type string

const (
	TypeIssue       Type = "issue"
	TypeImprovement Type = "improvement"
	TypeQuestion    Type = "question"
	TypeOther       Type = "other"
)

// Status tracks a feedback item's lifecycle.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusRejected   Status = "rejected"
)

// Priority ranks a feedback item.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Comment is a follow-up note on a feedback item.
type Comment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a single piece of feedback.
type Item struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Tags        []string  `json:"tags,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Comments    []Comment `json:"comments"`
}

// Sentinel errors for feedback operations.
var (
	ErrItemNotFound = errors.New("feedback item not found")
	ErrAmbiguousID  = errors.New("feedback id prefix matches multiple items")
)

// document is the wire format of the feedback file.
type document struct {
	Items     []*Item   `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists feedback items in a single JSON file with the same
// atomic-write discipline as the venv registry.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a feedback store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

func (s *Store) load() ([]*Item, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading feedback file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing feedback file: %w", err)
	}
	return doc.Items, nil
}

func (s *Store) save(items []*Item) error {
	doc := document{Items: items, UpdatedAt: s.now()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling feedback: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating feedback directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".feedback.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Submit files a new feedback item and returns it. Unknown types and
// priorities fall back to "other" and "medium" rather than failing.
func (s *Store) Submit(itemType Type, title, description string, priority Priority, tags []string) (*Item, error) {
	switch itemType {
	case TypeIssue, TypeImprovement, TypeQuestion, TypeOther:
	default:
		log.Warn(log.CatFeedback, "invalid feedback type, using other", "type", itemType)
		itemType = TypeOther
	}
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
	default:
		log.Warn(log.CatFeedback, "invalid priority, using medium", "priority", priority)
		priority = PriorityMedium
	}

	items, err := s.load()
	if err != nil {
		return nil, err
	}

	now := s.now()
	item := &Item{
		ID:          uuid.NewString(),
		Type:        itemType,
		Title:       title,
		Description: description,
		Priority:    priority,
		Tags:        tags,
		Status:      StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []Comment{},
	}
	items = append(items, item)

	if err := s.save(items); err != nil {
		return nil, err
	}
	log.Info(log.CatFeedback, "feedback submitted", "id", item.ID, "type", item.Type)
	return item, nil
}

// List returns items newest first, optionally filtered by status.
func (s *Store) List(status Status) ([]*Item, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}

	filtered := items[:0:0]
	for _, item := range items {
		if status == "" || item.Status == status {
			filtered = append(filtered, item)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// Get returns the item whose ID matches id exactly or by unique prefix.
func (s *Store) Get(id string) (*Item, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	return findByID(items, id)
}

// UpdateStatus transitions an item to the given status. Unlike Submit's
// coercion, an unknown status is an error: silently rewriting a lifecycle
// state would lose the operator's intent.
func (s *Store) UpdateStatus(id string, status Status) (*Item, error) {
	switch status {
	case StatusNew, StatusInProgress, StatusResolved, StatusClosed, StatusRejected:
	default:
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	item, err := findByID(items, id)
	if err != nil {
		return nil, err
	}

	item.Status = status
	item.UpdatedAt = s.now()
	if err := s.save(items); err != nil {
		return nil, err
	}
	log.Info(log.CatFeedback, "feedback status updated", "id", item.ID, "status", status)
	return item, nil
}

// Comment appends a comment to an item.
func (s *Store) Comment(id, author, text string) (*Item, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	item, err := findByID(items, id)
	if err != nil {
		return nil, err
	}

	item.Comments = append(item.Comments, Comment{
		Author:    author,
		Text:      text,
		CreatedAt: s.now(),
	})
	item.UpdatedAt = s.now()
	if err := s.save(items); err != nil {
		return nil, err
	}
	return item, nil
}

func findByID(items []*Item, id string) (*Item, error) {
	var match *Item
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
		if strings.HasPrefix(item.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
			}
			match = item
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return match, nil
}
