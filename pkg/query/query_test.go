package query_test

import (
	"testing"

	"github.com/kitelabs/kite/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "cheques", "c").
		Project("id", "ID").
		Project("filename", "Filename").
		Project("uploaded_at", "UploadedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	got := p.From()
	want := "public.cheques c"
	if got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapAlias(t *testing.T) {
	p := testProjection()
	if got := p.Alias(); got != "c" {
		t.Errorf("Alias() = %q, want %q", got, "c")
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	got := p.Columns()
	want := "c.id, c.filename, c.uploaded_at"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "Filename", "c.filename"},
		{"mapped timestamp", "UploadedAt", "c.uploaded_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{
			"single ascending",
			"Filename",
			[]query.SortField{{Field: "Filename"}},
		},
		{
			"single descending",
			"-UploadedAt",
			[]query.SortField{{Field: "UploadedAt", Descending: true}},
		},
		{
			"multiple mixed",
			"Filename,-UploadedAt",
			[]query.SortField{
				{Field: "Filename"},
				{Field: "UploadedAt", Descending: true},
			},
		},
		{
			"with spaces",
			" Filename , -UploadedAt ",
			[]query.SortField{
				{Field: "Filename"},
				{Field: "UploadedAt", Descending: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %+v, want %+v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildNoConditions(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.Build()

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c"
	if sql != want {
		t.Errorf("Build() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want empty", args)
	}
}

func TestBuildWithDefaultSort(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "UploadedAt", Descending: true})
	sql, _ := b.Build()

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c ORDER BY c.uploaded_at DESC"
	if sql != want {
		t.Errorf("Build() sql = %q, want %q", sql, want)
	}
}

func TestWhereEquals(t *testing.T) {
	t.Run("adds condition", func(t *testing.T) {
		b := query.NewBuilder(testProjection()).WhereEquals("Filename", "cheque.pdf")
		sql, args := b.Build()

		want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE c.filename = $1"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 || args[0] != "cheque.pdf" {
			t.Errorf("args = %v, want [cheque.pdf]", args)
		}
	})

	t.Run("nil pointer is no-op", func(t *testing.T) {
		var name *string
		b := query.NewBuilder(testProjection()).WhereEquals("Filename", name)
		sql, args := b.Build()

		want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})
}

func TestWhereContains(t *testing.T) {
	b := query.NewBuilder(testProjection()).WhereContains("Filename", ptr("report"))
	sql, args := b.Build()

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE c.filename ILIKE $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "%report%" {
		t.Errorf("args = %v, want [%%report%%]", args)
	}
}

func TestWhereNotNull(t *testing.T) {
	b := query.NewBuilder(testProjection()).WhereNotNull("Filename")
	sql, args := b.Build()

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE c.filename IS NOT NULL"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestWhereNullable(t *testing.T) {
	t.Run("nil yields IS NULL", func(t *testing.T) {
		b := query.NewBuilder(testProjection()).WhereNullable("Filename", nil)
		sql, args := b.Build()

		want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE c.filename IS NULL"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("value yields equality", func(t *testing.T) {
		b := query.NewBuilder(testProjection()).WhereNullable("Filename", "x.pdf")
		sql, args := b.Build()

		want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE c.filename = $1"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 || args[0] != "x.pdf" {
			t.Errorf("args = %v, want [x.pdf]", args)
		}
	})
}

func TestWhereSearch(t *testing.T) {
	b := query.NewBuilder(testProjection()).WhereSearch(ptr("abc"), "Filename", "ID")
	sql, args := b.Build()

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE (c.filename ILIKE $1 OR c.id ILIKE $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 || args[0] != "%abc%" || args[1] != "%abc%" {
		t.Errorf("args = %v, want two %%abc%% patterns", args)
	}
}

func TestParameterRenumbering(t *testing.T) {
	b := query.NewBuilder(testProjection()).
		WhereEquals("Filename", "a.pdf").
		WhereContains("ID", ptr("123"))

	sql, args := b.Build()

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE c.filename = $1 AND c.id ILIKE $2"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("args length = %d, want 2", len(args))
	}
}

func TestBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection()).WhereEquals("Filename", "a.pdf")
	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.cheques c WHERE c.filename = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args length = %d, want 1", len(args))
	}
}

func TestBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "UploadedAt", Descending: true})
	sql, _ := b.BuildPage(3, 10)

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c ORDER BY c.uploaded_at DESC LIMIT 10 OFFSET 20"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuildSingle(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildSingle("ID", "abc-123")

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE c.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("args = %v, want [abc-123]", args)
	}
}

func TestBuildSingleOrNull(t *testing.T) {
	active := true
	b := query.NewBuilder(testProjection()).
		WhereEquals("Filename", "a.pdf").
		WhereEquals("ID", &active)

	sql, args := b.BuildSingleOrNull()

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c WHERE c.filename = $1 AND c.id = $2 LIMIT 1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("args length = %d, want 2", len(args))
	}
}

func TestOrderByFieldsOverridesDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "UploadedAt", Descending: true}).
		OrderByFields([]query.SortField{{Field: "Filename"}})

	sql, _ := b.Build()

	want := "SELECT c.id, c.filename, c.uploaded_at FROM public.cheques c ORDER BY c.filename ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
