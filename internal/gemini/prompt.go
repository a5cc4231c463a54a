package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mentorship-dashboard/internal/models"
)

// SystemInstruction is shared by every provider.
const SystemInstruction = `Você é um analista de programas de mentoria. Você recebe as respostas de um formulário de acompanhamento preenchido por mentores e mentorados e produz uma análise curta, construtiva e profissional em português brasileiro.

Retorne APENAS um objeto JSON válido, sem texto adicional, com a estrutura:
{
  "analysis": "sua análise aqui",
  "sentiment": "positivo|neutro|negativo",
  "sentimentScore": número_de_1_a_10
}

Para o sentiment:
- "positivo": feedback majoritariamente positivo, notas altas, comentários encorajadores
- "neutro": feedback misto ou moderado, sem tendência clara
- "negativo": feedback com críticas, notas baixas, insatisfação expressa

Para o sentimentScore:
- 1-3: negativo
- 4-7: neutro
- 8-10: positivo`

// BuildPrompt renders the user prompt for one survey answer.
func BuildPrompt(in models.FeedbackInput) string {
	var b strings.Builder
	b.WriteString("Analise os seguintes dados de feedback de uma sessão de mentoria:\n\n")
	fmt.Fprintf(&b, "- Nota do encontro (0-10): %d\n", in.MeetingRating)
	fmt.Fprintf(&b, "- Experiência relatada: %q\n", in.Experience)
	fmt.Fprintf(&b, "- Nota de engajamento da dupla (0-10): %d\n", in.EngagementRating)
	fmt.Fprintf(&b, "- Comentários adicionais: %q\n\n", in.Comments)
	b.WriteString("A análise deve ter entre 50 e 100 palavras e incluir: uma avaliação geral do progresso da dupla, ")
	b.WriteString("pontos positivos, áreas que necessitam atenção (se houver) e recomendações para melhorar a mentoria.")
	return b.String()
}

// ParseAnalysis decodes a provider answer, tolerating markdown code fences.
// It fails when any of the three fields is missing.
func ParseAnalysis(text string) (*models.AnalysisResponse, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var result models.AnalysisResponse
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}

	if strings.TrimSpace(result.Analysis) == "" || strings.TrimSpace(result.Sentiment) == "" || result.SentimentScore == 0 {
		return nil, errors.New("analysis response is missing required fields")
	}

	return &result, nil
}
