package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/reachsuite/emailbuilder/internal/domain"
)

const templatesTable = "email_templates"

var templateColumns = []string{
	"id",
	"name",
	"subject",
	"preheader",
	"html_content",
	"blocks",
	"global_styles",
	"created_at",
	"updated_at",
}

type templateRepository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
	now  func() time.Time
}

// NewTemplateRepository creates a new PostgreSQL template repository
func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &templateRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func jsonOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (r *templateRepository) CreateTemplate(ctx context.Context, template *domain.Template) error {
	now := r.now()
	template.CreatedAt = now
	template.UpdatedAt = now
	template.Blocks = jsonOrDefault(template.Blocks, "[]")
	template.GlobalStyles = jsonOrDefault(template.GlobalStyles, "{}")

	query, args, err := r.psql.Insert(templatesTable).
		Columns(templateColumns...).
		Values(
			template.ID,
			template.Name,
			template.Subject,
			template.Preheader,
			template.HTMLContent,
			template.Blocks,
			template.GlobalStyles,
			template.CreatedAt,
			template.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) GetTemplateByID(ctx context.Context, id string) (*domain.Template, error) {
	query, args, err := r.psql.Select(templateColumns...).
		From(templatesTable).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	template, err := scanTemplate(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTemplateNotFound{Message: "template not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return template, nil
}

func (r *templateRepository) GetTemplates(ctx context.Context) ([]*domain.Template, error) {
	query, args, err := r.psql.Select(templateColumns...).
		From(templatesTable).
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	defer rows.Close()

	templates := []*domain.Template{}
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	return templates, nil
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, template *domain.Template) error {
	template.UpdatedAt = r.now()
	template.Blocks = jsonOrDefault(template.Blocks, "[]")
	template.GlobalStyles = jsonOrDefault(template.GlobalStyles, "{}")

	query, args, err := r.psql.Update(templatesTable).
		Set("name", template.Name).
		Set("subject", template.Subject).
		Set("preheader", template.Preheader).
		Set("html_content", template.HTMLContent).
		Set("blocks", template.Blocks).
		Set("global_styles", template.GlobalStyles).
		Set("updated_at", template.UpdatedAt).
		Where(sq.Eq{"id": template.ID, "deleted_at": nil}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&template.CreatedAt)
	if err == sql.ErrNoRows {
		return &domain.ErrTemplateNotFound{Message: "template not found"}
	}
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, id string) error {
	query, args, err := r.psql.Update(templatesTable).
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTemplateNotFound{Message: "template not found"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(scanner rowScanner) (*domain.Template, error) {
	var template domain.Template
	err := scanner.Scan(
		&template.ID,
		&template.Name,
		&template.Subject,
		&template.Preheader,
		&template.HTMLContent,
		&template.Blocks,
		&template.GlobalStyles,
		&template.CreatedAt,
		&template.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &template, nil
}
