package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vaultpass/passforge-go/internal/crypto"
	"github.com/vaultpass/passforge-go/internal/model"
	"github.com/vaultpass/passforge-go/internal/repository"
)

// NoticeDefaultClasses is emitted when no character class was enabled.
const NoticeDefaultClasses = "default_character_classes"

// GeneratorService validates batch requests and runs generate+hash cycles.
type GeneratorService struct {
	gen      *crypto.Generator
	store    repository.Store
	workers  int
	validate *validator.Validate
}

// NewGeneratorService creates a new GeneratorService. store may be nil, in
// which case nothing is persisted. workers <= 1 runs cycles sequentially.
func NewGeneratorService(gen *crypto.Generator, store repository.Store, workers int) *GeneratorService {
	if gen == nil {
		gen = crypto.NewGenerator(nil)
	}
	return &GeneratorService{
		gen:      gen,
		store:    store,
		workers:  workers,
		validate: newValidator(),
	}
}

// Generate produces req.Count passwords with their hashes, in request order.
// Either every password is returned or none is.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerationRequest) (model.BatchResult, error) {
	if err := s.validateRequest(req); err != nil {
		return model.BatchResult{}, err
	}

	classes, notices := resolveClasses(req)

	passwords, err := s.run(ctx, req, classes)
	if err != nil {
		return model.BatchResult{}, err
	}

	result := model.BatchResult{
		BatchID:   uuid.NewString(),
		Passwords: passwords,
		Notices:   notices,
	}

	if s.store != nil {
		if err := s.persist(ctx, result); err != nil {
			return model.BatchResult{}, err
		}
	}

	slog.Debug("password batch generated",
		"batch_id", result.BatchID,
		"count", req.Count,
		"length", req.Length,
		"cost_factor", req.CostFactor,
	)

	return result, nil
}

// resolveClasses builds the class set, substituting the default classes
// explicitly so the caller is told what was used.
func resolveClasses(req model.GenerationRequest) (crypto.ClassSet, []model.Notice) {
	var classes crypto.ClassSet
	if req.Uppercase {
		classes = classes.With(crypto.Uppercase)
	}
	if req.Lowercase {
		classes = classes.With(crypto.Lowercase)
	}
	if req.Numbers {
		classes = classes.With(crypto.Numbers)
	}
	if req.Special {
		classes = classes.With(crypto.Special)
	}

	if !classes.Empty() {
		return classes, nil
	}

	return crypto.DefaultClasses, []model.Notice{{
		Code:    NoticeDefaultClasses,
		Message: "no character classes were selected; lowercase letters and numbers were used",
	}}
}

func (s *GeneratorService) run(ctx context.Context, req model.GenerationRequest, classes crypto.ClassSet) ([]model.GeneratedPassword, error) {
	passwords := make([]model.GeneratedPassword, req.Count)

	if s.workers <= 1 {
		for i := range passwords {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			p, err := s.cycle(req, classes)
			if err != nil {
				return nil, &BatchError{Index: i, Err: err}
			}
			passwords[i] = p
		}
		return passwords, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range passwords {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.cycle(req, classes)
			if err != nil {
				return &BatchError{Index: i, Err: err}
			}
			passwords[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A parent cancellation after the last cycle started still aborts the batch.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return passwords, nil
}

// cycle generates one password and hashes it.
func (s *GeneratorService) cycle(req model.GenerationRequest, classes crypto.ClassSet) (model.GeneratedPassword, error) {
	password, err := s.gen.Generate(req.Length, classes, req.EasyToRead)
	if err != nil {
		return model.GeneratedPassword{}, fmt.Errorf("%w: generating password: %w", ErrEnvironment, err)
	}

	hash, err := crypto.HashPassword(password, req.CostFactor)
	if err != nil {
		return model.GeneratedPassword{}, fmt.Errorf("%w: hashing password: %w", ErrEnvironment, err)
	}

	return model.GeneratedPassword{Password: password, Hash: hash}, nil
}

// persist saves the batch in one SaveBatch call so a store failure leaves
// none of its records behind.
func (s *GeneratorService) persist(ctx context.Context, result model.BatchResult) error {
	createdAt := time.Now().UTC()
	records := make([]*model.PasswordRecord, len(result.Passwords))
	for i, p := range result.Passwords {
		records[i] = &model.PasswordRecord{
			BatchID:   result.BatchID,
			Plaintext: p.Password,
			Hash:      p.Hash,
			CreatedAt: createdAt,
		}
	}

	if err := s.store.SaveBatch(ctx, records); err != nil {
		return fmt.Errorf("saving batch %s: %w", result.BatchID, err)
	}
	return nil
}

func (s *GeneratorService) validateRequest(req model.GenerationRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return ve
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
