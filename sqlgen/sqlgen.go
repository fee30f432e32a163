// Package sqlgen composes SQL DDL statements from form-style table
// definitions. It only builds statement text; nothing here connects to a
// database or validates against a live schema.
package sqlgen

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors mirror the blocking form notices: generation aborts and
// nothing is emitted.
var (
	ErrMissingTableName  = errors.New("table name is required")
	ErrNoColumns         = errors.New("at least one column is required")
	ErrMissingColumnName = errors.New("column name is required")
	ErrMissingColumnType = errors.New("column type is required")
)

// Column describes one column of a table definition.
type Column struct {
	Name          string
	Type          string
	Size          int // optional, e.g. VARCHAR(255)
	PrimaryKey    bool
	NotNull       bool
	AutoIncrement bool
	Unique        bool
	Default       string // optional literal, emitted verbatim
}

// Table is a form-style CREATE TABLE definition.
type Table struct {
	Name    string
	Columns []Column
}

// AlterOp is the kind of ALTER TABLE change.
type AlterOp string

const (
	AlterAdd    AlterOp = "ADD"
	AlterModify AlterOp = "MODIFY"
	AlterDrop   AlterOp = "DROP"
)

// Alter is a form-style ALTER TABLE definition.
type Alter struct {
	Table  string
	Op     AlterOp
	Column Column
}

// columnDef renders one column definition clause.
func columnDef(c Column) (string, error) {
	if strings.TrimSpace(c.Name) == "" {
		return "", ErrMissingColumnName
	}
	if strings.TrimSpace(c.Type) == "" {
		return "", fmt.Errorf("column %s: %w", c.Name, ErrMissingColumnType)
	}

	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(c.Type))
	if c.Size > 0 {
		fmt.Fprintf(&b, "(%d)", c.Size)
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Unique {
		b.WriteString(" UNIQUE")
	}
	if c.AutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}
	if c.Default != "" {
		fmt.Fprintf(&b, " DEFAULT %s", c.Default)
	}
	return b.String(), nil
}

// CreateStatement renders the CREATE TABLE statement for the definition.
// Presence checks only: a missing table name or an empty column list aborts.
func (t Table) CreateStatement() (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", ErrMissingTableName
	}
	if len(t.Columns) == 0 {
		return "", ErrNoColumns
	}

	defs := make([]string, 0, len(t.Columns)+1)
	var primary []string
	for _, c := range t.Columns {
		def, err := columnDef(c)
		if err != nil {
			return "", err
		}
		defs = append(defs, "  "+def)
		if c.PrimaryKey {
			primary = append(primary, c.Name)
		}
	}
	if len(primary) > 0 {
		defs = append(defs, fmt.Sprintf("  PRIMARY KEY (%s)", strings.Join(primary, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", t.Name, strings.Join(defs, ",\n")), nil
}

// Statement renders the ALTER TABLE statement for the change.
func (a Alter) Statement() (string, error) {
	if strings.TrimSpace(a.Table) == "" {
		return "", ErrMissingTableName
	}

	switch a.Op {
	case AlterDrop:
		if strings.TrimSpace(a.Column.Name) == "" {
			return "", ErrMissingColumnName
		}
		return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", a.Table, a.Column.Name), nil
	case AlterAdd, AlterModify:
		def, err := columnDef(a.Column)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ALTER TABLE %s %s COLUMN %s;", a.Table, a.Op, def), nil
	default:
		return "", fmt.Errorf("unknown alter operation: %q", a.Op)
	}
}

// ParseColumnSpec parses a compact column description of the form
// "name:type[:size][:flags]" where flags are single letters: p (primary key),
// n (not null), a (auto increment), u (unique). Used by the CLI.
func ParseColumnSpec(spec string) (Column, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return Column{}, fmt.Errorf("column spec %q must be name:type[:size][:flags]", spec)
	}
	c := Column{Name: strings.TrimSpace(parts[0]), Type: strings.TrimSpace(parts[1])}

	rest := parts[2:]
	if len(rest) > 0 {
		// Optional size segment, digits only.
		if n, err := parseSize(rest[0]); err == nil {
			c.Size = n
			rest = rest[1:]
		}
	}
	for _, seg := range rest {
		for _, f := range seg {
			switch f {
			case 'p':
				c.PrimaryKey = true
				c.NotNull = true
			case 'n':
				c.NotNull = true
			case 'a':
				c.AutoIncrement = true
			case 'u':
				c.Unique = true
			default:
				return Column{}, fmt.Errorf("unknown column flag %q in %q", string(f), spec)
			}
		}
	}
	if c.Name == "" {
		return Column{}, ErrMissingColumnName
	}
	if c.Type == "" {
		return Column{}, ErrMissingColumnType
	}
	return c, nil
}

func parseSize(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, errors.New("empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.New("not a size")
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
