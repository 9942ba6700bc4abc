package model

import "time"

// Favorite is a named bookmark owned by exactly one user.
type Favorite struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}

// FavoriteJSON is the public representation of a Favorite.
type FavoriteJSON struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

func SerializeFavorite(f Favorite) FavoriteJSON {
	return FavoriteJSON{
		ID:     f.ID,
		UserID: f.UserID,
		Name:   f.Name,
	}
}

func SerializeFavorites(favs []Favorite) []FavoriteJSON {
	out := make([]FavoriteJSON, 0, len(favs))
	for _, f := range favs {
		out = append(out, SerializeFavorite(f))
	}
	return out
}
