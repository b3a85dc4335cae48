package dialect

// Built-in dialects. Registered at init so every compilation target is
// resolvable without further wiring.
func init() {
	Register(standard{name: Generic, level: Supported})
	Register(standard{name: "ansi", level: Supported})
	Register(standard{name: "postgres", level: Supported})
	Register(standard{name: "sqlite", level: Supported})
	Register(standard{name: "duckdb", level: Supported})
	Register(backtickDialect{standard{name: "mysql", level: Supported}})
	Register(backtickDialect{standard{name: "bigquery", level: Nightly}})
	Register(bracketDialect{standard{name: "mssql", level: Nightly}})
	Register(standard{name: "snowflake", level: Nightly})
	Register(standard{name: "clickhouse", level: Unsupported})
}
