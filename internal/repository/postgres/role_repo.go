package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"confdata/internal/domain"
)

// superuserFlagRoleID marks a superuser role derived from users.is_superuser
// rather than granted through user_roles.
const superuserFlagRoleID = "is_superuser"

type roleRepository struct {
	DB *sql.DB
}

// NewRoleRepository returns a RoleRepository. Accounts migrated from the
// conference site keep their is_superuser flag; it is reported as the superuser role.
func NewRoleRepository(db *sql.DB) domain.RoleRepository {
	return &roleRepository{DB: db}
}

func (r *roleRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	query := fmt.Sprintf(`
		SELECT r.id, r.code
		FROM roles r
		INNER JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		UNION ALL
		SELECT '%s', '%s'
		FROM users u
		WHERE u.id = $1 AND u.is_superuser = TRUE
		ORDER BY 2, 1
	`, superuserFlagRoleID, domain.RoleSuperuser)
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []*domain.Role{}
	seen := make(map[string]bool)
	for rows.Next() {
		role := &domain.Role{}
		if err := rows.Scan(&role.ID, &role.Code); err != nil {
			return nil, err
		}
		if seen[role.Code] {
			continue
		}
		seen[role.Code] = true
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
