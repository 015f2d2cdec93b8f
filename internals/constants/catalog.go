package constants

// Catalogs offered to the SPA dropdowns. These mirror the values already in
// production data, so order and spelling must not change casually.

var Matieres = []string{
	"Mathématiques",
	"Français",
	"Anglais",
	"Physique-Chimie",
	"SVT",
	"Histoire-Géographie",
	"Philosophie",
	"Économie",
	"Espagnol",
	"Allemand",
	"Informatique",
	"Dessin",
	"Musique",
	"Éducation physique",
}

var Niveaux = []string{
	"CP",
	"CE1",
	"CE2",
	"CM1",
	"CM2",
	"6ème",
	"5ème",
	"4ème",
	"3ème",
	"2nde",
	"1ère",
	"Terminale",
	"Université",
	"Formation professionnelle",
}

var Frequences = []string{
	"1 fois par semaine",
	"2 fois par semaine",
	"3 fois par semaine",
	"Tous les jours",
	"Week-end uniquement",
	"À la demande",
}

var Disponibilites = []string{
	"Lundi matin",
	"Lundi après-midi",
	"Lundi soir",
	"Mardi matin",
	"Mardi après-midi",
	"Mardi soir",
	"Mercredi matin",
	"Mercredi après-midi",
	"Mercredi soir",
	"Jeudi matin",
	"Jeudi après-midi",
	"Jeudi soir",
	"Vendredi matin",
	"Vendredi après-midi",
	"Vendredi soir",
	"Samedi matin",
	"Samedi après-midi",
	"Dimanche matin",
	"Dimanche après-midi",
}

func InCatalog(catalog []string, v string) bool {
	for _, item := range catalog {
		if item == v {
			return true
		}
	}
	return false
}
