package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"liftlog/api/internal/domain"
	"liftlog/api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidContact  = errors.New("invalid contact message")
	ErrMessageNotFound = errors.New("message not found")
)

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if msg.Name == "" || msg.Message == "" {
		return nil, fmt.Errorf("%w: name and message are required", ErrInvalidContact)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return nil, fmt.Errorf("%w: bad email address", ErrInvalidContact)
	}

	id, err := s.contactRepo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id
	return msg, nil
}

func (s *contactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}

func (s *contactService) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	return notFoundAs(s.contactRepo.MarkRead(ctx, id), ErrMessageNotFound)
}

func (s *contactService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return notFoundAs(s.contactRepo.Delete(ctx, id), ErrMessageNotFound)
}

func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
