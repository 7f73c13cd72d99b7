package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/efekanoption-hub/FisTaray-c/internal/export"
	"github.com/efekanoption-hub/FisTaray-c/internal/extraction"
	"github.com/efekanoption-hub/FisTaray-c/internal/scanning"
)

// IDGenerator generates unique IDs for profiles
type IDGenerator interface {
	Generate() string
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.New().String()
}

// Service handles receipt operations
type Service struct {
	db          DB
	scanner     scanning.Scanner
	assembler   *extraction.Assembler
	languages   string
	idGenerator IDGenerator
	timeSource  extraction.TimeSource
}

// NewService creates a new Service. languages is the OCR hint passed to
// the scanner, e.g. "tur+eng".
func NewService(db DB, scanner scanning.Scanner, assembler *extraction.Assembler, languages string) *Service {
	return NewServiceWithDeps(db, scanner, assembler, languages, &defaultIDGenerator{}, extraction.SystemClock)
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner scanning.Scanner, assembler *extraction.Assembler, languages string, idGen IDGenerator, timeSrc extraction.TimeSource) *Service {
	if languages == "" {
		languages = scanning.DefaultLanguages
	}
	return &Service{
		db:          db,
		scanner:     scanner,
		assembler:   assembler,
		languages:   languages,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ScanReceipt recognizes the text on an uploaded receipt photo and records it
// in the profile's history. When recognition fails nothing is recorded.
func (s *Service) ScanReceipt(ctx context.Context, profileID, filename string, data []byte, contentType string) (*extraction.Receipt, error) {
	if _, err := s.db.GetProfile(profileID); err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	text, err := s.scanner.Recognize(ctx, data, contentType, s.languages)
	if err != nil {
		slog.Error("Failed to scan receipt",
			"profile", profileID,
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
	}

	return s.RecordText(profileID, text)
}

// RecordText runs the extraction engine over raw receipt text and saves the
// resulting record at the head of the profile's history.
func (s *Service) RecordText(profileID, text string) (*extraction.Receipt, error) {
	if _, err := s.db.GetProfile(profileID); err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	receipt := s.assembler.Assemble(text)
	if err := s.db.SaveReceipt(profileID, &receipt); err != nil {
		return nil, fmt.Errorf("saving receipt to database: %w", err)
	}

	slog.Info("Receipt recorded",
		"profile", profileID,
		"id", receipt.ID,
		"name", receipt.Name,
		"category", receipt.Category,
		"amount", receipt.Amount.StringFixed(2),
	)
	return &receipt, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(profileID string, id int64) (*extraction.Receipt, error) {
	receipt, err := s.db.GetReceipt(profileID, id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return receipt, nil
}

// ListReceipts returns a profile's receipts, newest first
func (s *Service) ListReceipts(profileID string) ([]*extraction.Receipt, error) {
	receipts, err := s.db.ListReceipts(profileID)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt from a profile's history
func (s *Service) DeleteReceipt(profileID string, id int64) error {
	if err := s.db.DeleteReceipt(profileID, id); err != nil {
		return fmt.Errorf("deleting receipt from database: %w", err)
	}
	return nil
}

// Summary aggregates a profile's spending
func (s *Service) Summary(profileID string) (export.Summary, error) {
	receipts, err := s.ListReceipts(profileID)
	if err != nil {
		return export.Summary{}, err
	}
	return export.Summarize(receipts), nil
}

// CreateProfile adds a new, empty profile
func (s *Service) CreateProfile(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProfileName
	}

	profile := &Profile{
		ID:        s.idGenerator.Generate(),
		Name:      name,
		CreatedAt: s.timeSource.Now(),
	}
	if err := s.db.SaveProfile(profile); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	return profile, nil
}

// GetProfile retrieves a profile by ID
func (s *Service) GetProfile(id string) (*Profile, error) {
	profile, err := s.db.GetProfile(id)
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return profile, nil
}

// ListProfiles returns all profiles
func (s *Service) ListProfiles() ([]*Profile, error) {
	profiles, err := s.db.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a profile and every receipt it holds
func (s *Service) DeleteProfile(id string) error {
	if err := s.db.DeleteProfile(id); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	slog.Info("Profile deleted", "profile", id)
	return nil
}
