package game

import "math/rand"

// Question is a single catalog entry. The answer travels with the question:
// the moderator screen needs it to judge, and clients decide what to show.
type Question struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Prompt   string `json:"question"`
	Answer   string `json:"answer"`
}

// Picker draws random questions from a fixed catalog without repeating a
// question until the catalog is exhausted, and avoiding back-to-back
// categories on a best-effort basis.
type Picker struct {
	catalog      []Question
	used         map[int]bool
	lastCategory string
	rng          *rand.Rand
}

// NewPicker builds a picker over the given catalog. An empty catalog falls
// back to the built-in default set.
func NewPicker(catalog []Question, rng *rand.Rand) *Picker {
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	return &Picker{
		catalog: catalog,
		used:    make(map[int]bool),
		rng:     rng,
	}
}

// Next returns a random question that has not been used this cycle and, when
// possible, is not from the same category as the previous draw. When every
// question has been used the cycle resets, so Next always makes progress.
func (p *Picker) Next() Question {
	fresh := make([]Question, 0, len(p.catalog))
	for _, q := range p.catalog {
		if !p.used[q.ID] {
			fresh = append(fresh, q)
		}
	}
	if len(fresh) == 0 {
		p.used = make(map[int]bool)
		fresh = append(fresh, p.catalog...)
	}

	candidates := fresh
	if p.lastCategory != "" {
		diverse := make([]Question, 0, len(fresh))
		for _, q := range fresh {
			if q.Category != p.lastCategory {
				diverse = append(diverse, q)
			}
		}
		// Category diversity is best-effort: if avoiding the last category
		// leaves nothing, use whatever is fresh.
		if len(diverse) > 0 {
			candidates = diverse
		}
	}

	q := candidates[p.rng.Intn(len(candidates))]
	p.used[q.ID] = true
	p.lastCategory = q.Category
	return q
}

// Remaining returns how many questions are left in the current cycle.
func (p *Picker) Remaining() int {
	n := 0
	for _, q := range p.catalog {
		if !p.used[q.ID] {
			n++
		}
	}
	return n
}

// Reset clears the used set and the last-category memory.
func (p *Picker) Reset() {
	p.used = make(map[int]bool)
	p.lastCategory = ""
}

// DefaultCatalog returns the built-in question set, used when the config
// provides none.
func DefaultCatalog() []Question {
	qs := []Question{
		{Category: "Geografía", Prompt: "País con mayor extensión del Río Amazonas", Answer: "Brasil"},
		{Category: "Geografía", Prompt: "¿Capital de Italia?", Answer: "Roma"},
		{Category: "Geografía", Prompt: "¿Dónde está la Torre Eiffel?", Answer: "Francia"},
		{Category: "Geografía", Prompt: "¿Cuál es el océano más grande?", Answer: "Pacífico"},
		{Category: "Geografía", Prompt: "¿País más grande del mundo?", Answer: "Rusia"},
		{Category: "Ciencia", Prompt: "¿Planeta más cercano al Sol?", Answer: "Mercurio"},
		{Category: "Ciencia", Prompt: "¿Símbolo químico del Hidrógeno?", Answer: "H"},
		{Category: "Ciencia", Prompt: "¿Metal precioso amarillo?", Answer: "Oro"},
		{Category: "Ciencia", Prompt: "¿Cuántas patas tiene una araña?", Answer: "Ocho"},
		{Category: "Ciencia", Prompt: "¿Órgano que bombea sangre?", Answer: "Corazón"},
		{Category: "Historia", Prompt: "¿En qué año llegó Colón a América?", Answer: "1492"},
		{Category: "Historia", Prompt: "¿Primer presidente de Estados Unidos?", Answer: "Washington"},
		{Category: "Historia", Prompt: "¿Civilización que construyó Machu Picchu?", Answer: "Inca"},
		{Category: "Historia", Prompt: "¿Conflicto bélico de 1939 a 1945?", Answer: "Segunda Guerra Mundial"},
		{Category: "General", Prompt: "¿Cuántos lados tiene un hexágono?", Answer: "Seis"},
		{Category: "General", Prompt: "¿Color de la esperanza?", Answer: "Verde"},
		{Category: "General", Prompt: "¿Cuántos años tiene un siglo?", Answer: "100"},
		{Category: "General", Prompt: "¿Moneda de Japón?", Answer: "Yen"},
		{Category: "Arte", Prompt: "¿Autor del Quijote?", Answer: "Cervantes"},
		{Category: "Arte", Prompt: "¿Pintor de la Mona Lisa?", Answer: "Da Vinci"},
		{Category: "Arte", Prompt: "¿Quién escribió Hamlet?", Answer: "Shakespeare"},
		{Category: "Cine", Prompt: "¿Nombre del ogro verde de Dreamworks?", Answer: "Shrek"},
		{Category: "Comics", Prompt: "¿Alter ego de Batman?", Answer: "Bruce Wayne"},
		{Category: "Música", Prompt: "¿El Rey del Pop?", Answer: "Michael Jackson"},
		{Category: "Deportes", Prompt: "¿Deporte rey en Brasil?", Answer: "Fútbol"},
		{Category: "Deportes", Prompt: "¿Cuántos jugadores tiene un equipo de fútbol?", Answer: "11"},
		{Category: "Deportes", Prompt: "¿En qué deporte se usa una raqueta?", Answer: "Tenis"},
		{Category: "Matemáticas", Prompt: "¿Cuánto es 5 por 5?", Answer: "25"},
		{Category: "Matemáticas", Prompt: "¿Figura geométrica de 3 lados?", Answer: "Triángulo"},
	}
	for i := range qs {
		qs[i].ID = i + 1
	}
	return qs
}
