package model

import "time"

// Planet is a read-only reference record. Every field is required.
type Planet struct {
	ID             string
	Name           string
	Terrain        string
	Climate        string
	Population     int64
	OrbitalPeriod  int
	RotationPeriod int
	Diameter       int
	CreatedAt      time.Time
}

// PlanetJSON is the public representation of a Planet.
type PlanetJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name" validate:"required"`
	Terrain        string `json:"terrain" validate:"required"`
	Climate        string `json:"climate" validate:"required"`
	Population     int64  `json:"population" validate:"gte=0"`
	OrbitalPeriod  int    `json:"orbital_period" validate:"required,gt=0"`
	RotationPeriod int    `json:"rotation_period" validate:"required,gt=0"`
	Diameter       int    `json:"diameter" validate:"gte=0"`
}

func SerializePlanet(p Planet) PlanetJSON {
	return PlanetJSON{
		ID:             p.ID,
		Name:           p.Name,
		Terrain:        p.Terrain,
		Climate:        p.Climate,
		Population:     p.Population,
		OrbitalPeriod:  p.OrbitalPeriod,
		RotationPeriod: p.RotationPeriod,
		Diameter:       p.Diameter,
	}
}

func SerializePlanets(planets []Planet) []PlanetJSON {
	out := make([]PlanetJSON, 0, len(planets))
	for _, p := range planets {
		out = append(out, SerializePlanet(p))
	}
	return out
}

// Record converts the public shape back into a storable record.
func (p PlanetJSON) Record() Planet {
	return Planet{
		Name:           p.Name,
		Terrain:        p.Terrain,
		Climate:        p.Climate,
		Population:     p.Population,
		OrbitalPeriod:  p.OrbitalPeriod,
		RotationPeriod: p.RotationPeriod,
		Diameter:       p.Diameter,
	}
}
