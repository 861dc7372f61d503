package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recipeai/backend/internal/model"
)

var (
	invoiceExtractor = Persona{
		Role: "Food Invoice Data Extractor",
		Goal: "Extract only food-related items and quantities from invoices, generalizing item names by removing brand-specific information. " +
			"If the same product appears with different descriptions (e.g. Kashmir Apple vs. Apple), standardize it to the most general form (Apple). " +
			"Avoid duplicate entries caused by slight naming variations.",
		Backstory: "An expert in parsing invoices with a specialized focus on food-related items. It identifies and standardizes item names while maintaining data integrity.",
	}
	foodClassifier = Persona{
		Role:      "Food Classifier",
		Goal:      "Classify food items as fruits/vegetables or other food categories.",
		Backstory: "An expert in food classification with deep knowledge of ingredients and food categories.",
	}
	dataFormatter = Persona{
		Role:      "Data Formatter",
		Goal:      "Format extracted data into a consistent JSON structure.",
		Backstory: "An expert in data standardization and formatting with attention to detail.",
	}
)

// Quantity tolerates the model emitting a number, a numeric string, or a
// fractional value for an item count.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*q = Quantity(int(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", str)
		}
		*q = Quantity(int(n))
		return nil
	}

	return fmt.Errorf("invalid quantity format")
}

// InvoiceResult reports what an invoice upload committed to the pantry.
// ItemsProcessed is the authoritative count: upserts are not transactional,
// so a mid-pipeline failure can leave earlier items committed.
type InvoiceResult struct {
	Success        bool               `json:"success"`
	ItemsProcessed int                `json:"items_processed"`
	Items          []model.Ingredient `json:"items"`
}

// InvoiceService turns a grocery invoice PDF into upserted pantry items via
// text extraction and three completion stages.
type InvoiceService struct {
	llm         CompletionClient
	pdf         PDFExtractor
	ingredients IIngredientService
	archive     InvoiceArchiver
	events      EventPublisher
	now         func() time.Time
}

// NewInvoiceService creates a new InvoiceService instance. Archive and events
// are optional; nil disables them.
func NewInvoiceService(llm CompletionClient, pdf PDFExtractor, ingredients IIngredientService, archive InvoiceArchiver, events EventPublisher) *InvoiceService {
	return &InvoiceService{
		llm:         llm,
		pdf:         pdf,
		ingredients: ingredients,
		archive:     archive,
		events:      events,
		now:         time.Now,
	}
}

type invoiceItem struct {
	Name               string   `json:"name"`
	Quantity           Quantity `json:"quantity"`
	IsVegetableOrFruit bool     `json:"is_vegetable_or_fruit"`
}

// ProcessInvoice runs the extraction pipeline and upserts each resulting item
// keyed by name. Any stage failure aborts the remaining steps; items already
// upserted stay committed.
func (s *InvoiceService) ProcessInvoice(ctx context.Context, fileName string, data []byte) (*InvoiceResult, error) {
	if s.archive != nil {
		if location, err := s.archive.ArchiveInvoice(ctx, fileName, data); err != nil {
			log.Printf("[InvoiceService] failed to archive invoice %s: %v", fileName, err)
		} else {
			log.Printf("[InvoiceService] archived invoice at %s", location)
		}
	}

	pages, err := s.pdf.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("error processing PDF: %w", err)
	}

	text := strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoExtractableText
	}

	extracted, err := s.extractionStage(ctx, text)
	if err != nil {
		return nil, err
	}

	items, err := s.classificationStage(ctx, extracted)
	if err != nil {
		return nil, err
	}

	today := s.now()
	changed := make([]uuid.UUID, 0, len(items))
	stored := make([]model.Ingredient, 0, len(items))
	for _, item := range items {
		ingredient := &model.Ingredient{
			Name:               item.Name,
			Quantity:           int(item.Quantity),
			IsVegetableOrFruit: item.IsVegetableOrFruit,
			ItemAdded:          today,
		}
		saved, err := s.ingredients.Upsert(ctx, ingredient)
		if err != nil {
			return nil, fmt.Errorf("failed to store item %q: %w", item.Name, err)
		}
		changed = append(changed, saved.ID)
		stored = append(stored, *saved)
	}

	if s.events != nil && len(changed) > 0 {
		if err := s.events.PublishPantryUpdated(ctx, changed); err != nil {
			log.Printf("[InvoiceService] failed to publish pantry.updated: %v", err)
		}
	}

	return &InvoiceResult{
		Success:        true,
		ItemsProcessed: len(stored),
		Items:          stored,
	}, nil
}

// extractionStage asks for food-related line items only, with generalized
// names and numeric quantities.
func (s *InvoiceService) extractionStage(ctx context.Context, text string) ([]invoiceItem, error) {
	raw, err := s.llm.Complete(ctx, invoiceExtractor,
		fmt.Sprintf("Extract only **food-related** items from the following invoice text:\n%s\nFocus on extracting details such as **product name/title** and **quantity**. Ignore non-food-related entries such as electronics, furniture, or services.", text),
		"A list where each object contains: `name` (product title) and `quantity` (numeric).")
	if err != nil {
		return nil, err
	}

	value, err := Normalize("extract", TextOutput(raw))
	if err != nil {
		return nil, err
	}

	list, ok := value.([]interface{})
	if !ok {
		return nil, &MalformedOutputError{Stage: "extract", Raw: raw}
	}

	var items []invoiceItem
	if err := decodeInto(list, &items); err != nil {
		return nil, &MalformedOutputError{Stage: "extract", Raw: raw}
	}
	return items, nil
}

// classificationStage runs two sub-calls: classify each item as
// fruit/vegetable vs other food, then reformat to the canonical schema.
func (s *InvoiceService) classificationStage(ctx context.Context, items []invoiceItem) ([]invoiceItem, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	classified, err := s.llm.Complete(ctx, foodClassifier,
		fmt.Sprintf("Classify each food item as a fruit/vegetable (true) or other food (false):\n%s", encoded),
		"A list where each object contains: `name` (product title), `quantity` (numeric), `is_vegetable_or_fruit` (boolean).")
	if err != nil {
		return nil, err
	}

	formatted, err := s.llm.Complete(ctx, dataFormatter,
		fmt.Sprintf("Format the classified data into a consistent JSON structure with properly named fields:\n%s", classified),
		"A list where each object contains: `name` (product title), `quantity` (numeric), `is_vegetable_or_fruit` (boolean).")
	if err != nil {
		return nil, err
	}

	value, err := Normalize("format", TextOutput(formatted))
	if err != nil {
		return nil, err
	}

	list, ok := value.([]interface{})
	if !ok {
		return nil, &MalformedOutputError{Stage: "format", Raw: formatted}
	}

	var out []invoiceItem
	if err := decodeInto(list, &out); err != nil {
		return nil, &MalformedOutputError{Stage: "format", Raw: formatted}
	}
	return out, nil
}
