package sqlgen

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	// IDTable registers every IRI that instances and classes use.
	IDTable = "id"
	// VersionTable holds one row per stored version of an instance.
	VersionTable = "version"
)

// IRIRecord is a row of the id table.
type IRIRecord struct {
	ID  int64  `db:"id"  ddl:"IDENTITY" gorm:"column:id;type:bigint;primaryKey;autoIncrement"`
	URI string `db:"uri" ddl:"URI"      gorm:"column:uri;type:text;not null;uniqueIndex"`
}

// TableName returns the table name of the model.
func (IRIRecord) TableName() string {
	return IDTable
}

// Version is a row of the version table. Type is the id of the class IRI
// the version was stored as.
type Version struct {
	Created time.Time `db:"created" ddl:"DATETIME NOT NULL" gorm:"column:created;type:timestamp;primaryKey"`
	ID      int64     `db:"id"      ddl:"INT NOT NULL"      gorm:"column:id;type:bigint;primaryKey;autoIncrement:false"`
	Type    int64     `db:"type"    ddl:"INT NOT NULL"      gorm:"column:type;type:bigint;not null"`
}

// TableName returns the table name of the model.
func (Version) TableName() string {
	return VersionTable
}

// BootstrapModels returns the models of tables every schema depends on.
func BootstrapModels() []any {
	return []any{&IRIRecord{}, &Version{}}
}

// Migrate creates the bootstrap tables with GORM.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(BootstrapModels()...)
}

// generateDDL creates a CREATE TABLE statement from struct tags. The first
// word of a ddl tag is a neutral type translated by the dialect.
func generateDDL(d Dialect, model any, tableName string, constraints ...string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			typ, rest, _ := strings.Cut(ddlTag, " ")
			def := strings.TrimSpace(d.Type(typ) + " " + rest)
			columns = append(columns, fmt.Sprintf("  %s %s", d.Quote(dbTag), def))
		}
	}
	for _, c := range constraints {
		columns = append(columns, "  "+c)
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		d.Quote(tableName),
		strings.Join(columns, ",\n"))

	return ddl
}

// bootstrapDDL returns CREATE TABLE statements of the id and version
// tables.
func bootstrapDDL(d Dialect) []string {
	q := d.Quote
	version := []string{
		fmt.Sprintf("PRIMARY KEY (%s, %s)", q("created"), q("id")),
		fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", q("id"), q(IDTable), q("id")),
		fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", q("type"), q(IDTable), q("id")),
	}
	return []string{
		generateDDL(d, IRIRecord{}, IDTable),
		generateDDL(d, Version{}, VersionTable, version...),
	}
}
