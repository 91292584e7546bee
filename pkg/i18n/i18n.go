// Package i18n holds the user-facing string tables for the console client
// and the language selection logic for narrative output.
package i18n

import "golang.org/x/text/language"

// Language identifies one of the supported output languages. The value is
// also what the system instruction tells the model to write in.
type Language string

const (
	LanguageEN Language = "en"
	LanguagePT Language = "pt"
)

var supported = []language.Tag{
	language.English,             // en (fallback)
	language.BrazilianPortuguese, // pt-BR
}

var matcher = language.NewMatcher(supported)

// Match maps a BCP-47 locale string (e.g. "pt-BR", "en_US.UTF-8" stripped
// by the caller) onto a supported Language. Unrecognized input falls back
// to English.
func Match(locale string) Language {
	if locale == "" {
		return LanguageEN
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return LanguageEN
	}
	_, idx, _ := matcher.Match(tag)
	if idx == 1 {
		return LanguagePT
	}
	return LanguageEN
}

// T returns the translation for key in the given language. Missing keys
// fall back to English, then to the key itself so a typo is visible in
// the UI rather than silently blank.
func T(lang Language, key string) string {
	if table, ok := translations[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := translations[LanguageEN][key]; ok {
		return s
	}
	return key
}

var translations = map[Language]map[string]string{
	LanguageEN: {
		"title":                  "Gemini Adventure",
		"subtitle":               "The Shadowed Path",
		"description":            "Your fate is unwritten. In a world woven by the Chronicler's imagination, every choice carves a new reality. A unique story and a new vision await your command.",
		"beginAdventure":         "Begin Adventure",
		"gameOverTitle":          "The Tale Concludes",
		"restart":                "Venture Forth Anew",
		"whatWillYouDo":          "What will you do?",
		"loadingFate":            "The Chronicler is weaving your fate...",
		"loadingVision":          "A vision forms in the ether...",
		"loadingDestiny":         "Your choice echoes through destiny...",
		"loadingScene":           "A new scene materializes...",
		"errorTitle":             "An Error Occurred",
		"dismiss":                "Dismiss",
		"playerDefeated":         "You have been defeated.",
		"hp":                     "HP",
		"attack":                 "ATK",
		"defense":                "DEF",
		"gold":                   "Gold",
		"otherAction":            "Do something else...",
		"submitAction":           "Submit",
		"cancel":                 "Cancel",
		"customActionPrompt":     "What do you want to do?",
		"chooseYourGenre":        "Choose Your Genre",
		"genre_FANTASY":          "Dark Fantasy",
		"genre_ISEKAI":           "Isekai",
		"genre_SCI_FI":           "Sci-Fi",
		"genre_CYBERPUNK":        "Cyberpunk",
		"characterCreationTitle": "Create Your Hero",
		"characterName":          "Name",
		"characterPower":         "Unique Power / Skill",
		"characterDescription":   "Appearance / Backstory",
		"namePlaceholder":        "e.g., Kaelen the Silent",
		"powerPlaceholder":       "e.g., Can speak with shadows",
		"descriptionPlaceholder": "e.g., A tall rogue with a scarred face and piercing silver eyes...",
		"inventoryTab":           "Inventory",
		"organizationsTab":       "Organizations",
		"itemHeader":             "Item",
		"quantityHeader":         "Qty",
		"nameHeader":             "Name",
		"typeHeader":             "Type",
		"rolesHeader":            "Roles",
	},
	LanguagePT: {
		"title":                  "Aventura Gemini",
		"subtitle":               "O Caminho Sombrio",
		"description":            "Seu destino não está escrito. Em um mundo tecido pela imaginação do Cronista, cada escolha esculpe uma nova realidade. Uma história única e uma nova visão aguardam seu comando.",
		"beginAdventure":         "Começar Aventura",
		"gameOverTitle":          "O Conto Termina",
		"restart":                "Aventurar-se Novamente",
		"whatWillYouDo":          "O que você fará?",
		"loadingFate":            "O Cronista está tecendo seu destino...",
		"loadingVision":          "Uma visão se forma no éter...",
		"loadingDestiny":         "Sua escolha ecoa pelo destino...",
		"loadingScene":           "Uma nova cena se materializa...",
		"errorTitle":             "Ocorreu um Erro",
		"dismiss":                "Dispensar",
		"playerDefeated":         "Você foi derrotado.",
		"hp":                     "PV",
		"attack":                 "ATQ",
		"defense":                "DEF",
		"gold":                   "Ouro",
		"otherAction":            "Fazer outra coisa...",
		"submitAction":           "Enviar",
		"cancel":                 "Cancelar",
		"customActionPrompt":     "O que você quer fazer?",
		"chooseYourGenre":        "Escolha o Gênero",
		"genre_FANTASY":          "Fantasia Sombria",
		"genre_ISEKAI":           "Isekai",
		"genre_SCI_FI":           "Ficção Científica",
		"genre_CYBERPUNK":        "Cyberpunk",
		"characterCreationTitle": "Crie Seu Herói",
		"characterName":          "Nome",
		"characterPower":         "Poder / Habilidade Única",
		"characterDescription":   "Aparência / História",
		"namePlaceholder":        "Ex: Kaelen, o Silencioso",
		"powerPlaceholder":       "Ex: Consegue falar com as sombras",
		"descriptionPlaceholder": "Ex: Um ladrão alto com um rosto marcado por cicatrizes e olhos prateados penetrantes...",
		"inventoryTab":           "Inventário",
		"organizationsTab":       "Organizações",
		"itemHeader":             "Item",
		"quantityHeader":         "Qtd",
		"nameHeader":             "Nome",
		"typeHeader":             "Tipo",
		"rolesHeader":            "Cargos",
	},
}
