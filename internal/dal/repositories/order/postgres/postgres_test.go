package postgresrepo

import (
	"reflect"
	"strings"
	"testing"

	"github.com/corray333/backend-labs/cafe/internal/service/models/order"
)

func TestBuildUpdateQuery_SetsOnlySuppliedFields(t *testing.T) {
	r := NewPostgresOrderRepository(nil)
	status := "served"
	quantity := 3

	tests := []struct {
		name     string
		model    order.UpdateOrderModel
		wantSet  string
		wantArgs []any
	}{
		{
			name:     "status only",
			model:    order.UpdateOrderModel{Status: &status},
			wantSet:  "SET status = $1 WHERE id = $2",
			wantArgs: []any{"served", int64(7)},
		},
		{
			name:     "quantity and status",
			model:    order.UpdateOrderModel{Quantity: &quantity, Status: &status},
			wantSet:  "SET quantity = $1, status = $2 WHERE id = $3",
			wantArgs: []any{3, "served", int64(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := r.buildUpdateQuery(7, tt.model)
			if err != nil {
				t.Fatalf("buildUpdateQuery: %v", err)
			}
			if !strings.HasPrefix(query, "UPDATE orders ") {
				t.Errorf("query = %q, want an UPDATE of orders", query)
			}
			if !strings.Contains(query, tt.wantSet) {
				t.Errorf("query = %q, want it to contain %q", query, tt.wantSet)
			}
			if !strings.HasSuffix(query, returningOrderColumns()) {
				t.Errorf("query = %q, want RETURNING clause", query)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuildInsertQuery_LeavesStatusToDefault(t *testing.T) {
	r := NewPostgresOrderRepository(nil)

	query, args, err := r.buildInsertQuery(order.Order{MenuID: 1, Quantity: 2})
	if err != nil {
		t.Fatalf("buildInsertQuery: %v", err)
	}
	if len(args) != 3 {
		t.Errorf("query = %q args = %v, want status omitted", query, args)
	}

	query, args, err = r.buildInsertQuery(order.Order{MenuID: 1, Quantity: 2, Status: order.StatusPending})
	if err != nil {
		t.Fatalf("buildInsertQuery: %v", err)
	}
	if len(args) != 4 || args[3] != order.StatusPending {
		t.Errorf("query = %q args = %v, want explicit status", query, args)
	}
}

func TestApplyFilter_QualifiesJoinedColumns(t *testing.T) {
	r := NewPostgresOrderRepository(nil)

	query, args, err := applyFilter(r.joinedSelect(), &order.QueryOrdersModel{
		MenuIds: []int64{1, 2},
		Status:  "pending",
	}, "o.").ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}

	for _, want := range []string{
		"LEFT JOIN menu_items m ON m.id = o.menu_id",
		"o.menu_id IN ($1,$2)",
		"o.status = $3",
		"ORDER BY o.id ASC",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query = %q, want it to contain %q", query, want)
		}
	}
	if !reflect.DeepEqual(args, []any{int64(1), int64(2), "pending"}) {
		t.Errorf("args = %#v", args)
	}
}

func TestOrderWithMenuScanTarget(t *testing.T) {
	name := "Latte"
	id := int64(1)
	m := menuDal{Id: &id, Name: &name}
	if item := m.toModel(); item == nil || item.Name != "Latte" {
		t.Errorf("toModel = %+v, want Latte", item)
	}

	if item := (&menuDal{}).toModel(); item != nil {
		t.Errorf("toModel of unmatched join = %+v, want nil", item)
	}
}
