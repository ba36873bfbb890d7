package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shophub/storefront/internal/docstore"
)

const collection = "messages"

var ErrInvalidInput = errors.New("invalid input")

type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Service is the append-only contact message log.
type Service struct {
	store docstore.Store
	now   func() time.Time
}

func NewService(store docstore.Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Add validates and appends a message. Validation happens before any I/O.
func (s *Service) Add(ctx context.Context, name, email, subject, body string) (Message, error) {
	if strings.TrimSpace(email) == "" {
		return Message{}, fmt.Errorf("%w: email required", ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return Message{}, fmt.Errorf("%w: message required", ErrInvalidInput)
	}

	msg := Message{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Body:      body,
		Status:    "new",
		CreatedAt: s.now(),
	}

	err := s.store.Upsert(ctx, collection, msg.ID, docstore.Fields{
		"name":      msg.Name,
		"email":     msg.Email,
		"subject":   msg.Subject,
		"message":   msg.Body,
		"status":    msg.Status,
		"createdAt": msg.CreatedAt.Format(time.RFC3339),
	}, false)
	if err != nil {
		return Message{}, err
	}
	return msg, nil
}

// ListAll returns every message, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Message, error) {
	docs, err := s.store.Query(ctx, collection, nil,
		docstore.OrderBy{Field: "createdAt", Desc: true})
	if err != nil {
		return nil, err
	}

	out := make([]Message, 0, len(docs))
	for _, doc := range docs {
		str := func(v any) string {
			s, _ := v.(string)
			return s
		}
		msg := Message{
			ID:      doc.ID,
			Name:    str(doc.Fields["name"]),
			Email:   str(doc.Fields["email"]),
			Subject: str(doc.Fields["subject"]),
			Body:    str(doc.Fields["message"]),
			Status:  str(doc.Fields["status"]),
		}
		if created, err := time.Parse(time.RFC3339, str(doc.Fields["createdAt"])); err == nil {
			msg.CreatedAt = created
		}
		out = append(out, msg)
	}
	return out, nil
}
