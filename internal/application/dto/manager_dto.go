package dto

import "time"

// CreateManagerRequest entrada para crear un encargado.
type CreateManagerRequest struct {
	Name string `json:"name"`
}

// ManagerResponse salida de un encargado.
type ManagerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ManagerListResponse lista paginada de encargados.
type ManagerListResponse struct {
	Items []ManagerResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
