package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Unique index names used to distinguish conflict causes
const (
	IndexUsersEmailLower    = "idx_users_email_lower"
	IndexUsersUsernameLower = "idx_users_username_lower"
	IndexCropsPosition      = "crops_user_id_position_row_position_col_key"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)
