package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/cafe/internal/dal/postgres"
	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"github.com/jackc/pgx/v5"
)

const menuItemsTable = "menu_items"

var menuColumns = []string{"id", "name", "price", "description"}

// MenuItemDal represents menu item data access layer model.
type MenuItemDal struct {
	Id          int64  `db:"id"`
	Name        string `db:"name"`
	Price       int64  `db:"price"`
	Description string `db:"description"`
}

// ToModel converts MenuItemDal to service layer MenuItem model.
func (m *MenuItemDal) ToModel() *menu.MenuItem {
	return &menu.MenuItem{
		ID:          m.Id,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
	}
}

// PostgresMenuRepository represents a Postgres menu item repository.
type PostgresMenuRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresMenuRepository creates a new Postgres menu item repository.
func NewPostgresMenuRepository(conn postgres.GenericConn) *PostgresMenuRepository {
	return &PostgresMenuRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts a menu item and returns it with the generated id.
func (r *PostgresMenuRepository) Insert(
	ctx context.Context,
	item menu.MenuItem,
) (*menu.MenuItem, error) {
	query, args, err := r.sb.Insert(menuItemsTable).
		Columns("name", "price", "description").
		Values(item.Name, item.Price, item.Description).
		Suffix("RETURNING id, name, price, description").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	dal, err := scanMenuItem(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert menu item: %w", err)
	}

	return dal.ToModel(), nil
}

// Get retrieves a menu item by id.
func (r *PostgresMenuRepository) Get(ctx context.Context, id int64) (*menu.MenuItem, error) {
	return r.get(ctx, id, "")
}

// GetForShare retrieves a menu item by id and takes a shared row lock.
func (r *PostgresMenuRepository) GetForShare(
	ctx context.Context,
	id int64,
) (*menu.MenuItem, error) {
	return r.get(ctx, id, "FOR SHARE")
}

// GetForUpdate retrieves a menu item by id and takes an exclusive row lock.
func (r *PostgresMenuRepository) GetForUpdate(
	ctx context.Context,
	id int64,
) (*menu.MenuItem, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *PostgresMenuRepository) get(
	ctx context.Context,
	id int64,
	lock string,
) (*menu.MenuItem, error) {
	query, args, err := r.buildGetQuery(id, lock)
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	dal, err := scanMenuItem(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return dal.ToModel(), nil
}

func (r *PostgresMenuRepository) buildGetQuery(id int64, lock string) (string, []any, error) {
	builder := r.sb.Select(menuColumns...).
		From(menuItemsTable).
		Where(sq.Eq{"id": id})
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	return builder.ToSql()
}

// List retrieves all menu items ordered by id.
func (r *PostgresMenuRepository) List(ctx context.Context) ([]menu.MenuItem, error) {
	query, args, err := r.sb.Select(menuColumns...).
		From(menuItemsTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := []menu.MenuItem{}
	for rows.Next() {
		dal, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// Update writes only the fields present in model.
func (r *PostgresMenuRepository) Update(
	ctx context.Context,
	id int64,
	model menu.UpdateMenuModel,
) (*menu.MenuItem, error) {
	if model.IsEmpty() {
		item, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, menu.ErrMenuNotFound
		}

		return item, nil
	}

	builder := r.sb.Update(menuItemsTable)
	if model.Name != nil {
		builder = builder.Set("name", *model.Name)
	}
	if model.Price != nil {
		builder = builder.Set("price", *model.Price)
	}
	if model.Description != nil {
		builder = builder.Set("description", *model.Description)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, price, description").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	dal, err := scanMenuItem(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, menu.ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return dal.ToModel(), nil
}

// Delete removes a menu item by id.
func (r *PostgresMenuRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete(menuItemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menu.ErrMenuNotFound
	}

	return nil
}

func scanMenuItem(row pgx.Row) (*MenuItemDal, error) {
	var dal MenuItemDal
	if err := row.Scan(&dal.Id, &dal.Name, &dal.Price, &dal.Description); err != nil {
		return nil, err
	}

	return &dal, nil
}
