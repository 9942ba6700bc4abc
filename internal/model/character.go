package model

import "time"

// Character is a read-only reference record. Every field is required.
type Character struct {
	ID        string
	Name      string
	Gender    string
	Height    int
	BirthYear string
	HairColor string
	EyeColor  string
	SkinColor string
	CreatedAt time.Time
}

// CharacterJSON is the public representation of a Character. The seed loader
// also decodes its input files into this type.
type CharacterJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required"`
	Gender    string `json:"gender" validate:"required"`
	Height    int    `json:"height" validate:"required,gt=0"`
	BirthYear string `json:"birth_year" validate:"required"`
	HairColor string `json:"hair_color" validate:"required"`
	EyeColor  string `json:"eye_color" validate:"required"`
	SkinColor string `json:"skin_color" validate:"required"`
}

func SerializeCharacter(c Character) CharacterJSON {
	return CharacterJSON{
		ID:        c.ID,
		Name:      c.Name,
		Gender:    c.Gender,
		Height:    c.Height,
		BirthYear: c.BirthYear,
		HairColor: c.HairColor,
		EyeColor:  c.EyeColor,
		SkinColor: c.SkinColor,
	}
}

func SerializeCharacters(chars []Character) []CharacterJSON {
	out := make([]CharacterJSON, 0, len(chars))
	for _, c := range chars {
		out = append(out, SerializeCharacter(c))
	}
	return out
}

// Record converts the public shape back into a storable record. The ID is
// left for the store to assign.
func (c CharacterJSON) Record() Character {
	return Character{
		Name:      c.Name,
		Gender:    c.Gender,
		Height:    c.Height,
		BirthYear: c.BirthYear,
		HairColor: c.HairColor,
		EyeColor:  c.EyeColor,
		SkinColor: c.SkinColor,
	}
}
