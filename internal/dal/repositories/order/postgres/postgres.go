package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/cafe/internal/dal/postgres"
	"github.com/corray333/backend-labs/cafe/internal/service/models/menu"
	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
	"github.com/jackc/pgx/v5"
)

const ordersTable = "orders"

var orderColumns = []string{"id", "menu_id", "quantity", "status", "note"}

// joinedColumns are selected by reads that join the referenced menu item.
var joinedColumns = []string{
	"o.id",
	"o.menu_id",
	"o.quantity",
	"o.status",
	"o.note",
	"m.id",
	"m.name",
	"m.price",
	"m.description",
}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id       int64   `db:"id"`
	MenuId   int64   `db:"menu_id"`
	Quantity int     `db:"quantity"`
	Status   string  `db:"status"`
	Note     *string `db:"note"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:       o.Id,
		MenuID:   o.MenuId,
		Quantity: o.Quantity,
		Status:   o.Status,
		Note:     o.Note,
	}
}

// menuDal holds the nullable columns of a left-joined menu item.
type menuDal struct {
	Id          *int64
	Name        *string
	Price       *int64
	Description *string
}

func (m *menuDal) toModel() *menu.MenuItem {
	if m.Id == nil {
		return nil
	}

	item := &menu.MenuItem{ID: *m.Id}
	if m.Name != nil {
		item.Name = *m.Name
	}
	if m.Price != nil {
		item.Price = *m.Price
	}
	if m.Description != nil {
		item.Description = *m.Description
	}

	return item
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts an order and returns it with the generated id.
// An empty status is filled in by the column default.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	query, args, err := r.buildInsertQuery(o)
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	dal, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return dal.ToModel(), nil
}

func (r *PostgresOrderRepository) buildInsertQuery(o order.Order) (string, []any, error) {
	columns := []string{"menu_id", "quantity", "note"}
	values := []any{o.MenuID, o.Quantity, o.Note}
	if o.Status != "" {
		columns = append(columns, "status")
		values = append(values, o.Status)
	}

	return r.sb.Insert(ordersTable).
		Columns(columns...).
		Values(values...).
		Suffix(returningOrderColumns()).
		ToSql()
}

// Get retrieves an order by id.
func (r *PostgresOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	dal, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return dal.ToModel(), nil
}

// Update writes only the fields present in model.
func (r *PostgresOrderRepository) Update(
	ctx context.Context,
	id int64,
	model order.UpdateOrderModel,
) (*order.Order, error) {
	if model.IsEmpty() {
		o, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, order.ErrOrderNotFound
		}

		return o, nil
	}

	query, args, err := r.buildUpdateQuery(id, model)
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	dal, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return dal.ToModel(), nil
}

func (r *PostgresOrderRepository) buildUpdateQuery(
	id int64,
	model order.UpdateOrderModel,
) (string, []any, error) {
	builder := r.sb.Update(ordersTable)
	if model.MenuID != nil {
		builder = builder.Set("menu_id", *model.MenuID)
	}
	if model.Quantity != nil {
		builder = builder.Set("quantity", *model.Quantity)
	}
	if model.Note != nil {
		builder = builder.Set("note", *model.Note)
	}
	if model.Status != nil {
		builder = builder.Set("status", *model.Status)
	}

	return builder.
		Where(sq.Eq{"id": id}).
		Suffix(returningOrderColumns()).
		ToSql()
}

// Delete removes an order by id.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete(ordersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// GetWithMenu retrieves an order joined with its menu item.
func (r *PostgresOrderRepository) GetWithMenu(
	ctx context.Context,
	id int64,
) (*order.OrderWithMenu, error) {
	query, args, err := r.joinedSelect().
		Where(sq.Eq{"o.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	joined, err := scanOrderWithMenu(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order with menu: %w", err)
	}

	return joined, nil
}

// QueryWithMenu retrieves orders joined with their menu items based on filter criteria.
func (r *PostgresOrderRepository) QueryWithMenu(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.OrderWithMenu, error) {
	query, args, err := applyFilter(r.joinedSelect(), filter, "o.").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders with menu: %w", err)
	}
	defer rows.Close()

	result := []order.OrderWithMenu{}
	for rows.Next() {
		joined, err := scanOrderWithMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order with menu: %w", err)
		}
		result = append(result, *joined)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// CountByMenu counts orders referencing the menu item.
func (r *PostgresOrderRepository) CountByMenu(ctx context.Context, menuID int64) (int64, error) {
	query, args, err := r.sb.Select("count(*)").
		From(ordersTable).
		Where(sq.Eq{"menu_id": menuID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders by menu: %w", err)
	}

	return count, nil
}

func (r *PostgresOrderRepository) joinedSelect() sq.SelectBuilder {
	return r.sb.Select(joinedColumns...).
		From(ordersTable + " o").
		LeftJoin("menu_items m ON m.id = o.menu_id")
}

// applyFilter adds filter conditions to a select on the orders table.
// prefix qualifies column names when the orders table is aliased.
func applyFilter(
	query sq.SelectBuilder,
	filter *order.QueryOrdersModel,
	prefix string,
) sq.SelectBuilder {
	if filter != nil {
		if len(filter.Ids) > 0 {
			query = query.Where(sq.Eq{prefix + "id": filter.Ids})
		}

		if len(filter.MenuIds) > 0 {
			query = query.Where(sq.Eq{prefix + "menu_id": filter.MenuIds})
		}

		if filter.Status != "" {
			query = query.Where(sq.Eq{prefix + "status": filter.Status})
		}

		if filter.Limit > 0 {
			query = query.Limit(uint64(filter.Limit))
		}

		if filter.Offset > 0 {
			query = query.Offset(uint64(filter.Offset))
		}
	}

	return query.OrderBy(prefix + "id ASC")
}

func returningOrderColumns() string {
	return "RETURNING id, menu_id, quantity, status, note"
}

func scanOrder(row pgx.Row) (*OrderDal, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.MenuId,
		&dal.Quantity,
		&dal.Status,
		&dal.Note,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}

func scanOrderWithMenu(row pgx.Row) (*order.OrderWithMenu, error) {
	var (
		dal  OrderDal
		mdal menuDal
	)
	err := row.Scan(
		&dal.Id,
		&dal.MenuId,
		&dal.Quantity,
		&dal.Status,
		&dal.Note,
		&mdal.Id,
		&mdal.Name,
		&mdal.Price,
		&mdal.Description,
	)
	if err != nil {
		return nil, err
	}

	return &order.OrderWithMenu{
		Order: *dal.ToModel(),
		Menu:  mdal.toModel(),
	}, nil
}
