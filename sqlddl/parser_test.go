package sqlddl_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/erdkit/erdkit/raw"
	"github.com/erdkit/erdkit/sqlddl"
)

func ptr[T any](v T) *T {
	return &v
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []raw.Table
	}{
		{
			name: "basic table",
			input: `CREATE TABLE users (
				id SERIAL PRIMARY KEY,
				email VARCHAR(255) UNIQUE NOT NULL
			);`,
			expected: []raw.Table{
				{
					Name: "users",
					Columns: []raw.Column{
						{Name: "id", Type: "SERIAL", NotNull: true, PrimaryKey: true, Default: ptr("autoincrement()")},
						{Name: "email", Type: "VARCHAR(255)", NotNull: true, Unique: true},
					},
				},
			},
		},
		{
			name: "comments and string defaults",
			input: `-- user accounts
			CREATE TABLE accounts (
				id INT PRIMARY KEY, /* surrogate key */
				status VARCHAR(20) NOT NULL DEFAULT 'active',
				note TEXT DEFAULT 'it''s fine',
				created_at TIMESTAMP NOT NULL DEFAULT now()
			);`,
			expected: []raw.Table{
				{
					Name: "accounts",
					Columns: []raw.Column{
						{Name: "id", Type: "INT", NotNull: true, PrimaryKey: true},
						{Name: "status", Type: "VARCHAR(20)", NotNull: true, Default: ptr("'active'")},
						{Name: "note", Type: "TEXT", Default: ptr("'it''s fine'")},
						{Name: "created_at", Type: "TIMESTAMP", NotNull: true, Default: ptr("now()")},
					},
				},
			},
		},
		{
			name: "parenthesized type parameters",
			input: `CREATE TABLE products (
				id BIGSERIAL PRIMARY KEY,
				price DECIMAL(10,2) NOT NULL,
				weight DOUBLE PRECISION
			);`,
			expected: []raw.Table{
				{
					Name: "products",
					Columns: []raw.Column{
						{Name: "id", Type: "BIGSERIAL", NotNull: true, PrimaryKey: true, Default: ptr("autoincrement()")},
						{Name: "price", Type: "DECIMAL(10,2)", NotNull: true},
						{Name: "weight", Type: "DOUBLE PRECISION"},
					},
				},
			},
		},
		{
			name: "table level constraints",
			input: `CREATE TABLE order_items (
				order_id INT NOT NULL,
				product_id INT NOT NULL,
				quantity INT NOT NULL,
				CONSTRAINT pk_order_items PRIMARY KEY (order_id, product_id),
				CONSTRAINT fk_order FOREIGN KEY (order_id) REFERENCES orders(id),
				FOREIGN KEY (product_id) REFERENCES products (id),
				UNIQUE (order_id, product_id),
				CHECK (quantity > 0)
			);`,
			expected: []raw.Table{
				{
					Name: "order_items",
					Columns: []raw.Column{
						{Name: "order_id", Type: "INT", NotNull: true},
						{Name: "product_id", Type: "INT", NotNull: true},
						{Name: "quantity", Type: "INT", NotNull: true},
					},
					PrimaryKey: []string{"order_id", "product_id"},
					ForeignKeys: []raw.ForeignKey{
						{Columns: []string{"order_id"}, RefTable: "orders", RefColumns: []string{"id"}},
						{Columns: []string{"product_id"}, RefTable: "products", RefColumns: []string{"id"}},
					},
				},
			},
		},
		{
			name: "inline references",
			input: `CREATE TABLE posts (
				id SERIAL PRIMARY KEY,
				author_id INT NOT NULL REFERENCES users(id)
			);`,
			expected: []raw.Table{
				{
					Name: "posts",
					Columns: []raw.Column{
						{Name: "id", Type: "SERIAL", NotNull: true, PrimaryKey: true, Default: ptr("autoincrement()")},
						{Name: "author_id", Type: "INT", NotNull: true, Ref: &raw.ColumnRef{Table: "users", Column: "id"}},
					},
				},
			},
		},
		{
			name: "quoted and qualified identifiers",
			input: "CREATE TABLE IF NOT EXISTS public.orders (\n" +
				"\t`id` INT AUTO_INCREMENT PRIMARY KEY,\n" +
				"\t\"placed_at\" DATETIME NOT NULL\n" +
				");",
			expected: []raw.Table{
				{
					Name: "orders",
					Columns: []raw.Column{
						{Name: "id", Type: "INT", NotNull: true, PrimaryKey: true, Default: ptr("autoincrement()")},
						{Name: "placed_at", Type: "DATETIME", NotNull: true},
					},
				},
			},
		},
		{
			name: "multiple statements",
			input: `CREATE TABLE a (id INT PRIMARY KEY);
			INSERT INTO a VALUES (1);
			CREATE TABLE b (id INT PRIMARY KEY);`,
			expected: []raw.Table{
				{Name: "a", Columns: []raw.Column{{Name: "id", Type: "INT", NotNull: true, PrimaryKey: true}}},
				{Name: "b", Columns: []raw.Column{{Name: "id", Type: "INT", NotNull: true, PrimaryKey: true}}},
			},
		},
		{
			name:     "no recognizable statements",
			input:    "-- just a comment\nSELECT 1;",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sqlddl.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}

			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseUnbalanced(t *testing.T) {
	t.Parallel()

	_, err := sqlddl.Parse("CREATE TABLE broken (id INT");
	if !errors.Is(err, sqlddl.ErrUnbalanced) {
		t.Fatalf("Parse() error = %v, want ErrUnbalanced", err)
	}
}
