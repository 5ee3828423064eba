package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/application/ports"
	"github.com/jhoicas/inventario-empresas/pkg/config"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

// Verificar en tiempo de compilación que HuggingFaceService implementa LLMService.
var _ ports.LLMService = (*HuggingFaceService)(nil)

const (
	// promptMaxItems productos considerados en el prompt.
	promptMaxItems = 20
	// lowStockThreshold cantidad por debajo de la cual se sugiere reabastecer.
	lowStockThreshold = 10
)

// Textos de reemplazo cuando no hay recomendación del modelo.
const (
	FallbackNotConfigured = "No fue posible generar recomendaciones automáticas. Servicio de IA no configurado."
	FallbackGeneric       = "No fue posible generar recomendaciones automáticas en este momento."
	FallbackTimeout       = "No fue posible generar recomendaciones automáticas. El servicio tardó demasiado en responder."
	FallbackConnection    = "No fue posible generar recomendaciones automáticas. Error de conexión con el servicio."
	FallbackInvalidKey    = "No fue posible generar recomendaciones automáticas. API Key inválida."
)

// HuggingFaceService adaptador de LLMService sobre la Inference API de Hugging Face.
// Usa net/http de la librería estándar; las llamadas salientes se limitan con x/time/rate.
type HuggingFaceService struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// NewHuggingFaceService construye el adaptador. Con APIKey vacío no hace llamadas.
func NewHuggingFaceService(cfg config.AIConfig, log *logger.Logger) *HuggingFaceService {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerMin > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMin))
	}
	return &HuggingFaceService{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		log:        log.Component("ai"),
	}
}

// IsConfigured informa si hay API key.
func (s *HuggingFaceService) IsConfigured() bool {
	return s.apiKey != ""
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength   int     `json:"max_length"`
	MinLength   int     `json:"min_length"`
	DoSample    bool    `json:"do_sample"`
	Temperature float64 `json:"temperature"`
}

type hfOutput struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
}

// errHTTPStatus respuesta no 2xx del proveedor.
type errHTTPStatus struct{ code int }

func (e errHTTPStatus) Error() string { return fmt.Sprintf("AI: Hugging Face HTTP %d", e.code) }

// InventoryRecommendations construye el prompt y consulta el modelo. Nunca devuelve error.
func (s *HuggingFaceService) InventoryRecommendations(ctx context.Context, companyName string, items []dto.InventoryLine) string {
	if !s.IsConfigured() {
		s.log.Warn().Msg("servicio de IA sin API key")
		return FallbackNotConfigured
	}
	text, err := s.generate(ctx, BuildPrompt(companyName, items))
	if err != nil {
		s.log.Ctx(ctx).Error().Err(err).Str("endpoint", s.endpoint).Msg("fallo al generar recomendaciones")
		return fallbackFor(err)
	}
	if strings.TrimSpace(text) == "" {
		s.log.Warn().Msg("el modelo devolvió una respuesta vacía")
		return FallbackGeneric
	}
	return text
}

// BuildPrompt lista los productos con stock bajo entre los primeros 20 del inventario.
func BuildPrompt(companyName string, items []dto.InventoryLine) string {
	var b strings.Builder
	if companyName != "" {
		fmt.Fprintf(&b, "Se recomienda a la empresa %s considerar reabastecer los siguientes productos.\n", companyName)
	} else {
		b.WriteString("Se recomienda considerar reabastecer los siguientes productos.\n")
	}
	b.WriteString("\nInventario:\n")

	shown := items
	if len(shown) > promptMaxItems {
		shown = shown[:promptMaxItems]
	}
	for _, it := range shown {
		if it.Quantity >= lowStockThreshold {
			continue
		}
		name := it.ProductName
		if name == "" {
			name = "Producto"
		}
		fmt.Fprintf(&b, "- %s (código: %s): %d unidades\n", name, it.ProductCode, it.Quantity)
	}
	if len(items) > promptMaxItems {
		fmt.Fprintf(&b, "... y %d productos más.\n", len(items)-promptMaxItems)
	}
	b.WriteString("\nRecomendaciones:")
	return b.String()
}

func (s *HuggingFaceService) generate(ctx context.Context, prompt string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("AI: esperando cupo: %w", err)
	}

	body, err := json.Marshal(hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{MaxLength: 500, MinLength: 50, DoSample: false, Temperature: 0.7},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errHTTPStatus{code: resp.StatusCode}
	}
	return parseOutput(raw)
}

// parseOutput acepta [{generated_text|summary_text}] o el objeto suelto.
func parseOutput(raw []byte) (string, error) {
	var list []hfOutput
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", nil
		}
		return list[0].text(), nil
	}
	var single hfOutput
	if err := json.Unmarshal(raw, &single); err != nil {
		return "", fmt.Errorf("AI: formato de respuesta inesperado: %w", err)
	}
	return single.text(), nil
}

func (o hfOutput) text() string {
	if o.GeneratedText != "" {
		return o.GeneratedText
	}
	return o.SummaryText
}

func fallbackFor(err error) string {
	var status errHTTPStatus
	if errors.As(err, &status) {
		if status.code == http.StatusUnauthorized {
			return FallbackInvalidKey
		}
		return FallbackGeneric
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FallbackTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return FallbackTimeout
		}
		return FallbackConnection
	}
	return FallbackGeneric
}
