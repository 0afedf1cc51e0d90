package entity

import "time"

// Alias sinónimo o error fonético global (compartido entre tenants) de un producto canónico.
type Alias struct {
	Alias     string // minúsculas
	ItemName  string // nombre canónico
	CreatedAt time.Time
}
