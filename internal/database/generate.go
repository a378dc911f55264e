package database

// Schema and query code are generated from the migrations:
//
//	go generate ./internal/database
//
// CI can verify schema.sql is current without touching the tree:
//
//	go run internal/database/tools/generate_schema.go -check

//go:generate sh -c "cd ../.. && go run internal/database/tools/generate_schema.go"
//go:generate sh -c "cd ../.. && sqlc generate -f internal/database/sqlc/sqlc.yaml"
