package postgres

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// whereClause arma "WHERE col = $n AND ..." a partir del filtro. columns mapea cada clave
// aceptada a su columna; una clave fuera del mapa es un error. Las claves se recorren
// ordenadas para que el SQL sea estable.
func whereClause(filter repository.Filter, columns map[string]string) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		col, ok := columns[k]
		if !ok {
			return "", nil, fmt.Errorf("filtro no soportado: %q", k)
		}
		args = append(args, filter[k])
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
