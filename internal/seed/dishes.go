// Package seed contains the demo menu used to bootstrap an empty database.
package seed

// Dish describes one seedable menu item and its ficha text.
type Dish struct {
	Name       string
	Category   string
	PriceCents int
	Tags       []string
	Ficha      string
}

// Dishes returns the demo menu: 10 dishes with detailed fichas covering
// ingredients, allergens, and possible adaptations.
func Dishes() []Dish {
	return []Dish{
		{
			Name:       "Milanesa napolitana",
			Category:   "principales",
			PriceCents: 1250000,
			Tags:       []string{"carne", "clasico"},
			Ficha: `FICHA: Milanesa napolitana
Ingredientes: nalga de ternera, pan rallado, huevo, ajo, perejil, salsa de tomate, jamón cocido, queso mozzarella. Se sirve con papas fritas.
Alérgenos: contiene gluten (pan rallado), huevo, lácteos (mozzarella). El jamón cocido puede contener trazas de soja.
Preparación: la milanesa se fríe en aceite de girasol compartido con otras frituras rebozadas.
Adaptaciones: puede pedirse al horno en vez de frita. No hay versión sin TACC de este plato; el pan rallado es de trigo.
Nota de seguridad: no apto para celíacos ni alérgicos al huevo o a la leche.`,
		},
		{
			Name:       "Ñoquis de papa con fileto",
			Category:   "pastas",
			PriceCents: 980000,
			Tags:       []string{"pasta", "vegetariano"},
			Ficha: `FICHA: Ñoquis de papa con fileto
Ingredientes: papa, harina de trigo, huevo, sal. Salsa fileto: tomate perita, cebolla, ajo, albahaca, aceite de oliva.
Alérgenos: contiene gluten (harina de trigo) y huevo. La salsa fileto no contiene lácteos; el queso rallado se sirve aparte.
Adaptaciones: apto vegetariano. Puede servirse sin queso para dieta sin lactosa. No hay versión sin TACC.
Nota: la salsa se elabora sin caldo de carne.`,
		},
		{
			Name:       "Risotto de hongos",
			Category:   "principales",
			PriceCents: 1380000,
			Tags:       []string{"vegetariano", "sin tacc"},
			Ficha: `FICHA: Risotto de hongos
Ingredientes: arroz carnaroli, hongos portobello y champiñones, cebolla, vino blanco, caldo de verduras, manteca, queso parmesano.
Alérgenos: contiene lácteos (manteca y parmesano). No contiene gluten: el arroz carnaroli es naturalmente sin TACC y el caldo es casero sin conservantes con trigo.
Adaptaciones: versión vegana disponible reemplazando manteca y parmesano por aceite de oliva y levadura nutricional, avisar al pedir.
Nota de seguridad: apto celíacos según protocolo de cocina separada; confirmar con el personal en cada visita.`,
		},
		{
			Name:       "Trucha patagónica a la manteca",
			Category:   "pescados",
			PriceCents: 1650000,
			Tags:       []string{"pescado", "sin tacc"},
			Ficha: `FICHA: Trucha patagónica a la manteca
Ingredientes: filete de trucha, manteca, almendras tostadas, limón, papas al natural, perejil.
Alérgenos: contiene pescado, lácteos (manteca) y frutos secos (almendras). No contiene gluten.
Adaptaciones: puede prepararse a la plancha con aceite de oliva, sin manteca ni almendras, para alergias a lácteos o frutos secos.
Nota de seguridad: se manipula en la misma plancha que mariscos; puede contener trazas de marisco.`,
		},
		{
			Name:       "Ensalada de quinoa y vegetales asados",
			Category:   "ensaladas",
			PriceCents: 890000,
			Tags:       []string{"vegano", "sin tacc"},
			Ficha: `FICHA: Ensalada de quinoa y vegetales asados
Ingredientes: quinoa, zapallo, berenjena, morrón, cebolla morada, rúcula, semillas de sésamo, aderezo de limón y aceite de oliva.
Alérgenos: contiene sésamo. No contiene gluten, lácteos, huevo ni soja.
Adaptaciones: puede pedirse sin semillas de sésamo. Apta vegana y sin TACC.
Nota: la quinoa se enjuaga y cocina en agua, sin caldos industriales.`,
		},
		{
			Name:       "Sorrentinos de jamón y queso",
			Category:   "pastas",
			PriceCents: 1150000,
			Tags:       []string{"pasta"},
			Ficha: `FICHA: Sorrentinos de jamón y queso
Ingredientes: masa de harina de trigo y huevo, relleno de jamón cocido, queso cremoso y ricota. Salsa a elección: fileto, crema o mixta.
Alérgenos: contiene gluten, huevo y lácteos. El jamón puede contener trazas de soja. La salsa de crema contiene lácteos.
Adaptaciones: no hay versión sin TACC ni sin lácteos de este plato.
Nota de seguridad: no apto para celíacos.`,
		},
		{
			Name:       "Wok de vegetales y tofu",
			Category:   "principales",
			PriceCents: 1050000,
			Tags:       []string{"vegano"},
			Ficha: `FICHA: Wok de vegetales y tofu
Ingredientes: tofu, brócoli, zanahoria, morrón, cebolla de verdeo, jengibre, salsa de soja, aceite de sésamo, arroz yamaní.
Alérgenos: contiene soja (tofu y salsa de soja) y sésamo (aceite). La salsa de soja contiene trigo: el plato NO es apto sin TACC.
Adaptaciones: puede prepararse con salsa tamari sin trigo bajo pedido, sujeto a disponibilidad; consultar al personal.
Nota: apto vegano.`,
		},
		{
			Name:       "Bife de chorizo con puré",
			Category:   "principales",
			PriceCents: 1850000,
			Tags:       []string{"carne", "sin tacc"},
			Ficha: `FICHA: Bife de chorizo con puré
Ingredientes: bife de chorizo, sal gruesa, puré de papa con manteca y leche.
Alérgenos: el puré contiene lácteos (manteca y leche). La carne a la parrilla no contiene gluten.
Adaptaciones: puede pedirse con papas al natural o ensalada en lugar de puré para dieta sin lactosa. Apto sin TACC.
Nota: la parrilla no comparte superficie con productos rebozados.`,
		},
		{
			Name:       "Rabas a la romana",
			Category:   "entradas",
			PriceCents: 1420000,
			Tags:       []string{"marisco", "frito"},
			Ficha: `FICHA: Rabas a la romana
Ingredientes: anillas de calamar, harina de trigo, huevo, limón, perejil.
Alérgenos: contiene marisco (calamar), gluten y huevo. Se fríen en aceite compartido con otras frituras; pueden contener trazas de pescado.
Adaptaciones: no hay versión sin TACC ni apta para alérgicos a mariscos.
Nota de seguridad: plato de mayor riesgo para alergias; ante cualquier duda consultar al personal.`,
		},
		{
			Name:       "Flan casero con dulce de leche",
			Category:   "postres",
			PriceCents: 620000,
			Tags:       []string{"postre", "clasico"},
			Ficha: `FICHA: Flan casero con dulce de leche
Ingredientes: huevo, leche, azúcar, esencia de vainilla, dulce de leche, crema batida opcional.
Alérgenos: contiene huevo y lácteos. No contiene gluten ni frutos secos.
Adaptaciones: puede servirse sin crema ni dulce de leche, aunque el flan en sí siempre contiene huevo y leche.
Nota: elaborado en cocina donde se manipulan frutos secos; puede contener trazas.`,
		},
	}
}
