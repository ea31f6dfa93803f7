// Package sqlite provides a SQLite-backed content.Store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-datalist/internal/store/sqlite/migrations"
	"github.com/goliatone/go-datalist/pkg/content"
)

const memoryPath = ":memory:"

// Store persists published content in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ content.Store = (*Store)(nil)

// Open opens a SQLite content store and applies embedded migrations. Pass
// ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := memoryPath
	if path != memoryPath {
		dsn = "file:" + filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == memoryPath {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
		if _, err := sqlDB.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutContentType inserts or updates a content type.
func (s *Store) PutContentType(ctx context.Context, ct content.Type) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	alias := strings.TrimSpace(ct.TypeAlias)
	if ct.TypeKey == uuid.Nil {
		return fmt.Errorf("content type key is required")
	}
	if alias == "" {
		return fmt.Errorf("content type alias is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO content_types (key, alias, name) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET alias = excluded.alias, name = excluded.name`,
		ct.TypeKey.String(), alias, strings.TrimSpace(ct.TypeName),
	)
	if err != nil {
		return fmt.Errorf("put content type: %w", err)
	}
	return nil
}

// PutContent inserts or updates a content item. New items are ordered after
// their existing siblings.
func (s *Store) PutContent(ctx context.Context, node *content.Node) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if node == nil || node.NodeKey == uuid.Nil {
		return fmt.Errorf("content key is required")
	}
	name := strings.TrimSpace(node.NodeName)
	if name == "" {
		return fmt.Errorf("content name is required")
	}
	var typeKey any
	if node.Type != nil {
		typeKey = node.Type.Key().String()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO contents (key, name, parent_key, content_type_key, path, sort_order)
		 VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM contents WHERE parent_key = ?))
		 ON CONFLICT(key) DO UPDATE SET
		   name = excluded.name,
		   parent_key = excluded.parent_key,
		   content_type_key = excluded.content_type_key,
		   path = excluded.path`,
		node.NodeKey.String(), name, parentKey(node.Parent), typeKey, strings.Join(node.Segments, "/"), parentKey(node.Parent),
	)
	if err != nil {
		return fmt.Errorf("put content: %w", err)
	}
	return nil
}

const contentColumns = `c.key, c.name, c.parent_key, c.path, t.key, t.alias, t.name`

const contentFrom = ` FROM contents c LEFT JOIN content_types t ON t.key = c.content_type_key`

func (s *Store) ContentByKey(ctx context.Context, key uuid.UUID) (content.Content, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+contentColumns+contentFrom+` WHERE c.key = ?`, key.String())
	node, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	return node, nil
}

func (s *Store) Children(ctx context.Context, parent uuid.UUID) ([]content.Content, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+contentColumns+contentFrom+` WHERE c.parent_key = ? ORDER BY c.sort_order, c.name`,
		parentKey(parent),
	)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var out []content.Content
	for rows.Next() {
		node, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		out = append(out, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate children: %w", err)
	}
	return out, nil
}

func (s *Store) ContentTypeByKey(ctx context.Context, key uuid.UUID) (content.ContentType, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT key, alias, name FROM content_types WHERE key = ?`, key.String())
	return scanTypeRow(row)
}

func (s *Store) ContentTypeByAlias(ctx context.Context, alias string) (content.ContentType, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT key, alias, name FROM content_types WHERE alias = ?`, strings.TrimSpace(alias))
	return scanTypeRow(row)
}

// ContentTypes returns all content types ordered by alias.
func (s *Store) ContentTypes(ctx context.Context) ([]content.ContentType, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key, alias, name FROM content_types ORDER BY alias COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list content types: %w", err)
	}
	defer rows.Close()

	var out []content.ContentType
	for rows.Next() {
		ct, err := scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content type: %w", err)
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content types: %w", err)
	}
	return out, nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner) (*content.Node, error) {
	var (
		key, name, parent, path      string
		typeKey, typeAlias, typeName sql.NullString
	)
	if err := row.Scan(&key, &name, &parent, &path, &typeKey, &typeAlias, &typeName); err != nil {
		return nil, err
	}
	nodeKey, err := uuid.Parse(key)
	if err != nil {
		return nil, fmt.Errorf("parse content key: %w", err)
	}
	node := &content.Node{NodeKey: nodeKey, NodeName: name}
	if parent != "" {
		if node.Parent, err = uuid.Parse(parent); err != nil {
			return nil, fmt.Errorf("parse parent key: %w", err)
		}
	}
	if path != "" {
		node.Segments = strings.Split(path, "/")
	}
	if typeKey.Valid {
		ct, err := typeFrom(typeKey.String, typeAlias.String, typeName.String)
		if err != nil {
			return nil, err
		}
		node.Type = ct
	}
	return node, nil
}

func scanTypeRow(row *sql.Row) (content.ContentType, error) {
	ct, err := scanType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content type: %w", err)
	}
	return ct, nil
}

func scanType(row scanner) (content.Type, error) {
	var key, alias, name string
	if err := row.Scan(&key, &alias, &name); err != nil {
		return content.Type{}, err
	}
	return typeFrom(key, alias, name)
}

func typeFrom(key, alias, name string) (content.Type, error) {
	parsed, err := uuid.Parse(key)
	if err != nil {
		return content.Type{}, fmt.Errorf("parse content type key: %w", err)
	}
	return content.Type{TypeKey: parsed, TypeAlias: alias, TypeName: name}, nil
}

func parentKey(parent uuid.UUID) string {
	if parent == uuid.Nil {
		return ""
	}
	return parent.String()
}
