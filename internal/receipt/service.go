package receipt

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/danielliedt/smart-receipt-manager/internal/categorize"
	"github.com/danielliedt/smart-receipt-manager/internal/cleaning"
	"github.com/danielliedt/smart-receipt-manager/internal/extraction"
	"github.com/danielliedt/smart-receipt-manager/internal/parsing"
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service runs the receipt pipeline: extract text, parse, consolidate,
// reject unreadable scans, categorize, archive, store the source document.
type Service struct {
	db         DB
	extractor  extraction.TextExtractor
	parser     *parsing.Parser
	classifier categorize.Classifier
	archive    Archive
	storage    Storage
	quarantine Storage
	timeSource TimeSource
}

// NewService creates a new Service with the default time source
func NewService(db DB, extractor extraction.TextExtractor, parser *parsing.Parser, classifier categorize.Classifier, archive Archive, storage, quarantine Storage) *Service {
	return NewServiceWithDeps(db, extractor, parser, classifier, archive, storage, quarantine, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with a custom time source for testing
func NewServiceWithDeps(db DB, extractor extraction.TextExtractor, parser *parsing.Parser, classifier categorize.Classifier, archive Archive, storage, quarantine Storage, timeSrc TimeSource) *Service {
	return &Service{
		db:         db,
		extractor:  extractor,
		parser:     parser,
		classifier: classifier,
		archive:    archive,
		storage:    storage,
		quarantine: quarantine,
		timeSource: timeSrc,
	}
}

// rejectReason decides whether a parsed receipt is usable. A sentinel date,
// an unknown store or an empty item list all mean the scan quality was too
// poor to trust anything else the parser produced.
func rejectReason(parsed *parsing.Receipt) string {
	switch {
	case parsed.Header.Date == parsing.UnknownDate:
		return "no recognizable date"
	case parsed.Header.StoreName == parsing.UnknownStore:
		return "unknown store"
	case len(parsed.Items) == 0:
		return "no line items"
	}
	return ""
}

// reject puts the raw document into quarantine and returns the rejection.
// A quarantine write failure is logged but never masks the rejection itself.
func (s *Service) reject(filename string, data []byte, reason string) error {
	if _, err := s.quarantine.Save(filename, data); err != nil {
		slog.Warn("Failed to quarantine document", "filename", filename, "error", err)
	}
	return &RejectedError{Source: filename, Reason: reason}
}

// ProcessDocument runs one document through the full pipeline. It returns a
// *RejectedError when the scan is unreadable or a duplicate; any other error
// is a pipeline failure.
func (s *Service) ProcessDocument(filename string, data []byte, contentType string) (*Receipt, error) {
	pages, err := s.extractor.ExtractText(data, contentType)
	if err != nil {
		slog.Error("Failed to extract document text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("extracting text: %w", err)
	}

	parsed := s.parser.Parse(pages)
	parsed.Items = cleaning.ConsolidateItems(parsed.Items)

	if reason := rejectReason(parsed); reason != "" {
		return nil, s.reject(filename, data, reason)
	}

	for i := range parsed.Items {
		match, err := s.classifier.Classify(parsed.Items[i].Name)
		if err != nil {
			return nil, fmt.Errorf("categorizing %q: %w", parsed.Items[i].Name, err)
		}
		category := match.Category
		if match.Confidence < categorize.MinConfidence {
			category = categorize.Uncategorized
		}
		parsed.Items[i].Category = category
	}

	saved, err := s.archive.SaveReceipt(parsed.Header, parsed.Items)
	if err != nil {
		return nil, fmt.Errorf("archiving receipt: %w", err)
	}
	if !saved {
		return nil, s.reject(filename, data, "duplicate receipt id")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	savedPath, err := s.storage.Save(parsed.Header.ReceiptID+ext, data)
	if err != nil {
		return nil, fmt.Errorf("saving document file: %w", err)
	}

	receipt := &Receipt{
		ID:          parsed.Header.ReceiptID,
		Header:      parsed.Header,
		Items:       parsed.Items,
		Filename:    savedPath,
		ContentType: contentType,
		CreatedAt:   s.timeSource.Now(),
	}

	if err := s.db.SaveReceipt(receipt); err != nil {
		// Clean up file if database save fails
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving receipt to database: %w", err)
	}

	return receipt, nil
}

// ProcessBatch runs every PDF in dir through the pipeline. Processed and
// rejected documents are removed from the input directory (rejected ones
// already sit in quarantine); documents that hit a real pipeline error stay
// put for a retry. Returns the processed and rejected counts.
func (s *Service) ProcessBatch(dir string) (processed, rejected int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, fmt.Errorf("reading input directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".pdf" {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("Failed to read document", "path", path, "error", err)
			continue
		}

		_, err = s.ProcessDocument(entry.Name(), data, "application/pdf")
		var rejection *RejectedError
		switch {
		case errors.As(err, &rejection):
			slog.Warn("Document rejected", "source", rejection.Source, "reason", rejection.Reason)
			rejected++
		case err != nil:
			slog.Error("Failed to process document", "path", path, "error", err)
			continue
		default:
			processed++
		}

		if err := os.Remove(path); err != nil {
			slog.Warn("Failed to remove input document", "path", path, "error", err)
		}
	}

	return processed, rejected, nil
}

// CorrectCategory records a manual item-name to category correction. Future
// receipts pick it up through the memory classifier tier.
func (s *Service) CorrectCategory(itemName, category string) error {
	if strings.TrimSpace(itemName) == "" || strings.TrimSpace(category) == "" {
		return fmt.Errorf("item name and category are required")
	}
	if err := s.db.PutMapping(itemName, category); err != nil {
		return fmt.Errorf("saving category mapping: %w", err)
	}
	return nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(id string) (*Receipt, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return receipt, nil
}

// ListReceipts returns all receipts
func (s *Service) ListReceipts() ([]*Receipt, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt and its file
func (s *Service) DeleteReceipt(id string) error {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return fmt.Errorf("getting receipt for deletion: %w", err)
	}

	// Delete file
	if err := s.storage.Delete(receipt.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete file", "filename", receipt.Filename, "error", err)
	}

	// Delete from database
	if err := s.db.DeleteReceipt(id); err != nil {
		return fmt.Errorf("deleting receipt from database: %w", err)
	}
	return nil
}

// GetReceiptFile retrieves the file data for a receipt
func (s *Service) GetReceiptFile(id string) ([]byte, string, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt: %w", err)
	}

	data, err := s.storage.Get(receipt.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt file: %w", err)
	}

	return data, receipt.ContentType, nil
}
