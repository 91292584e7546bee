// Package prompts builds the fixed text sent to the generation services:
// the system instruction that turns the model into a game master, the
// opening player prompt, the structured response schema, and the style
// prefixes for scene images. Everything here is pure.
package prompts

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/chronicler/pkg/game"
	"github.com/jwebster45206/chronicler/pkg/i18n"
)

// languageNames is how the system instruction names the required output
// language. The generation side does not otherwise guarantee language
// adherence, so the instruction states it explicitly.
var languageNames = map[i18n.Language]string{
	i18n.LanguageEN: "English",
	i18n.LanguagePT: "Português (Brasil)",
}

var worldByGenre = map[game.Genre]map[i18n.Language]string{
	game.GenreFantasy: {
		i18n.LanguageEN: "Your world is a dark, mysterious fantasy realm filled with ancient ruins, forgotten magic, and dangerous creatures.",
		i18n.LanguagePT: "Seu mundo é um reino de fantasia sombrio e misterioso, cheio de ruínas antigas, magia esquecida e criaturas perigosas.",
	},
	game.GenreIsekai: {
		i18n.LanguageEN: "Your world is a vibrant fantasy realm of magic, kingdoms, and monsters. CRITICAL RULE: The player is from modern-day Earth and has just been transported here. Their story begins at the moment of their arrival. Acknowledge their confusion and disorientation.",
		i18n.LanguagePT: "Seu mundo é um reino de fantasia vibrante com magia, reinos e monstros. REGRA CRÍTICA: O jogador é da Terra moderna e acabou de ser transportado para cá. A história dele começa no momento de sua chegada. Reconheça sua confusão e desorientação.",
	},
	game.GenreSciFi: {
		i18n.LanguageEN: "Your world is a sprawling sci-fi universe of interstellar travel, alien species, advanced technology, and corporate warfare.",
		i18n.LanguagePT: "Seu mundo é um universo de ficção científica expansivo com viagens interestelares, espécies alienígenas, tecnologia avançada e guerra corporativa.",
	},
	game.GenreCyberpunk: {
		i18n.LanguageEN: "Your world is a rain-slicked, neon-drenched cyberpunk dystopia. Megacorporations rule from chrome towers while life thrives in the shadowy underbelly of the city.",
		i18n.LanguagePT: "Seu mundo é uma distopia cyberpunk encharcada de chuva e neon. Megacorporações governam de torres cromadas enquanto a vida prospera no submundo sombrio da cidade.",
	},
}

type instructionText struct {
	storyteller     string
	characterHeader string
	characterInfo   string // fmt: name, power, description
	rulesHeader     string
	rules           []string // rule 10 takes the language name
}

var instructionByLang = map[i18n.Language]instructionText{
	i18n.LanguageEN: {
		storyteller:     "You are a master storyteller and Game Master for a dynamic text-based RPG.",
		characterHeader: "PLAYER CHARACTER:",
		characterInfo:   "Name: %s. Power: %s. Description: %s. You MUST weave these character details into the story naturally. The player's power should be a key factor in how they can solve problems.",
		rulesHeader:     "For every turn, you MUST:",
		rules: []string{
			"Describe the current scene and what is happening in a vivid, paragraph-long description. This will be used to generate an image, so make it visually descriptive.",
			"Present the player with exactly 3 distinct, actionable choices that logically follow from the description. Choices can be for exploration, interaction, or combat.",
			"Manage the player's stats. The player starts with 100 HP, 10 Attack, 5 Defense, and 0 Gold. You must track their current HP and Gold.",
			"Manage the player's inventory. When the player finds, buys, or uses an item, update their inventory using `inventoryChanges`. For 'added', provide full item details. For 'removed', just provide the item name.",
			"Manage player-owned entities (guilds, companies, etc.). When the player creates or recruits for an organization, use `entityChanges`. The 'updated' array should contain the full, updated state of the entity. To remove an entity, use the 'removed' array with its name.",
			"When combat occurs, introduce an enemy with its own stats (name, HP, attack). The player must have a way to fight back.",
			"When the player makes a combat choice (e.g., 'Attack the goblin'), calculate the outcome. A simple damage formula is `damage = attacker's attack`. Be creative with outcomes. Report the results in the 'log' field.",
			"Update the player's HP and Gold based on combat or events. Reflect this change in the `playerStatsChange` field (e.g., negative for damage/spending, positive for healing/gains). These must be numbers.",
			"Determine if the story has reached a conclusive end (e.g., player HP is 0 or less, or a major quest is completed).",
			"Respond ONLY with a JSON object that adheres to the provided schema. Do not add any text, markdown, or any characters before or after the JSON object. You MUST respond in this language: %s.",
			"Keep the story engaging and coherent. Your goal is to create an immersive and replayable experience.",
		},
	},
	i18n.LanguagePT: {
		storyteller:     "Você é um mestre contador de histórias e Mestre de Jogo para um RPG de texto dinâmico.",
		characterHeader: "PERSONAGEM DO JOGADOR:",
		characterInfo:   "Nome: %s. Poder: %s. Descrição: %s. Você DEVE entrelaçar esses detalhes do personagem na história naturalmente. O poder do jogador deve ser um fator chave em como ele pode resolver problemas.",
		rulesHeader:     "Para cada turno, você DEVE:",
		rules: []string{
			"Descrever a cena atual e o que está acontecendo em uma descrição vívida de um parágrafo. Isso será usado para gerar uma imagem, então seja visualmente descritivo.",
			"Apresentar ao jogador exatamente 3 escolhas distintas e acionáveis que sigam logicamente a descrição. As escolhas podem ser para exploração, interação ou combate.",
			"Gerenciar os status do jogador. O jogador começa com 100 HP, 10 de Ataque, 5 de Defesa e 0 de Ouro. Você deve rastrear o HP e Ouro atuais deles.",
			"Gerenciar o inventário do jogador. Quando o jogador encontra, compra ou usa um item, atualize seu inventário usando `inventoryChanges`. Para 'added', forneça os detalhes completos do item. Para 'removed', forneça apenas o nome do item.",
			"Gerenciar entidades pertencentes ao jogador (guildas, empresas, etc.). Quando o jogador cria ou recruta para uma organização, use `entityChanges`. O array 'updated' deve conter o estado completo e atualizado da entidade. Para remover uma entidade, use o array 'removed' com seu nome.",
			"Quando o combate ocorrer, apresente um inimigo com seus próprios status (nome, HP, ataque). O jogador deve ter uma forma de lutar.",
			"Quando o jogador fizer uma escolha de combate (por exemplo, 'Atacar o goblin'), calcule o resultado. Uma fórmula de dano simples é `dano = ataque do atacante`. Seja criativo com os resultados. Relate os resultados no campo 'log'.",
			"Atualizar o HP e o Ouro do jogador com base no combate ou eventos. Reflita essa mudança no campo `playerStatsChange` (ex: negativo para dano/gasto, positivo para cura/ganhos). Devem ser números.",
			"Determinar se a história chegou a um fim conclusivo (ex: HP do jogador é 0 ou menos, ou uma missão principal foi concluída).",
			"Responder APENAS com um objeto JSON que adere ao esquema fornecido. Não adicione texto, markdown ou quaisquer caracteres antes ou depois do objeto JSON. Você DEVE responder neste idioma: %s.",
			"Manter a história envolvente e coerente. Seu objetivo é criar uma experiência imersiva e rejogável.",
		},
	},
}

// SystemInstruction builds the game-master instruction for a session. It
// is fixed at session creation and never changes during a game.
func SystemInstruction(lang i18n.Language, genre game.Genre, character game.CharacterProfile) string {
	text, ok := instructionByLang[lang]
	if !ok {
		lang = i18n.LanguageEN
		text = instructionByLang[lang]
	}
	world, ok := worldByGenre[genre][lang]
	if !ok {
		world = worldByGenre[game.GenreFantasy][lang]
	}

	var b strings.Builder
	b.WriteString(text.storyteller)
	b.WriteString(" ")
	b.WriteString(world)
	b.WriteString("\n\n")
	b.WriteString(text.characterHeader)
	b.WriteString("\n")
	fmt.Fprintf(&b, text.characterInfo, character.Name, character.Power, character.Description)
	b.WriteString("\n\n")
	b.WriteString(text.rulesHeader)
	for i, rule := range text.rules {
		if i == 9 {
			rule = fmt.Sprintf(rule, languageNames[lang])
		}
		fmt.Fprintf(&b, "\n%d. %s", i+1, rule)
	}
	return b.String()
}

var isekaiInitialPrompts = map[i18n.Language]string{
	i18n.LanguageEN: "I suddenly find myself here, in this unfamiliar place, my old life gone in a flash. My modern clothes feel strange. This is me: [CHARACTER_INFO]. My adventure begins now.",
	i18n.LanguagePT: "De repente, me encontro aqui, neste lugar desconhecido, minha vida antiga se foi em um piscar de olhos. Minhas roupas modernas parecem estranhas. Este sou eu: [CHARACTER_INFO]. Minha aventura começa agora.",
}

var defaultInitialPrompts = map[i18n.Language]string{
	i18n.LanguageEN: "I awaken, the world hazy around me. This is who I am: [CHARACTER_INFO]. Begin my adventure.",
	i18n.LanguagePT: "Eu acordo, o mundo nebuloso ao meu redor. Isto é quem eu sou: [CHARACTER_INFO]. Comece minha aventura.",
}

// InitialPrompt is the very first user turn of a game. Isekai stories
// start at the moment of arrival; every other genre uses the generic
// awakening opening.
func InitialPrompt(lang i18n.Language, genre game.Genre, character game.CharacterProfile) string {
	templates := defaultInitialPrompts
	if genre == game.GenreIsekai {
		templates = isekaiInitialPrompts
	}
	template, ok := templates[lang]
	if !ok {
		template = templates[i18n.LanguageEN]
	}
	return strings.ReplaceAll(template, "[CHARACTER_INFO]", character.Summary())
}

var imagePromptPrefixes = map[game.Genre]string{
	game.GenreFantasy:   "cinematic fantasy art, hyperrealistic, epic lighting, dark fantasy, detailed, atmospheric.",
	game.GenreIsekai:    "vibrant anime art style, fantasy world, detailed background, dynamic lighting, high quality.",
	game.GenreSciFi:     "cinematic sci-fi art, futuristic, detailed machinery, cosmic lighting, hyperrealistic, epic.",
	game.GenreCyberpunk: "cinematic cyberpunk art, neon-drenched, dystopian, gritty, high-tech, Blade Runner style.",
}

// ImagePrompt prefixes the scene description with the genre's fixed
// visual style string.
func ImagePrompt(genre game.Genre, description string) string {
	prefix, ok := imagePromptPrefixes[genre]
	if !ok {
		prefix = imagePromptPrefixes[game.GenreFantasy]
	}
	return prefix + " " + description
}
