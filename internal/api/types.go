package api

// AnalysisResult is the canonical form of a file analysis response. The
// backend has shipped several field spellings over time (score/risk_score,
// filename/original_filename); decoding folds them into this one shape with
// explicit defaults so rendering code never touches optional fields.
type AnalysisResult struct {
	Message          string          `json:"message,omitempty"`
	OriginalFilename string          `json:"original_filename"`
	StoredReference  string          `json:"stored_as,omitempty"`
	SHA256           string          `json:"sha256"`
	RiskScore        int             `json:"risk_score"`
	Timeline         []TimelineEntry `json:"timeline,omitempty"`
	Image            *ImageSummary   `json:"image,omitempty"`
}

// TimelineEntry is a single filesystem event used for the activity chart.
type TimelineEntry struct {
	Path       string `json:"path"`
	ModifiedAt int64  `json:"modified_at"`
	SizeBytes  int64  `json:"size_bytes"`
}

// ImageSummary is returned instead of a risk score when a RAW disk image
// (.raw/.dd/.img) was uploaded.
type ImageSummary struct {
	NumFiles   int         `json:"num_files"`
	TopFiles   []ImageFile `json:"top_files"`
	Suspicious []string    `json:"suspicious"`
	Hashes     []ImageHash `json:"hashes"`
}

type ImageFile struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

type ImageHash struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
}

// URLAnalysisResult is the canonical form of a URL scan response.
type URLAnalysisResult struct {
	URL             string     `json:"url"`
	RiskScore       int        `json:"risk_score"`
	RiskCategory    string     `json:"risk_category"`
	Profile         URLProfile `json:"profile"`
	Signals         []Signal   `json:"signals"`
	Recommendations []string   `json:"recommendations"`
}

// URLProfile describes structural properties of the analyzed URL.
type URLProfile struct {
	Scheme         string       `json:"scheme"`
	Host           string       `json:"host"`
	TLD            string       `json:"tld"`
	URLLength      int          `json:"url_length"`
	Entropy        float64      `json:"entropy"`
	SubdomainCount int          `json:"subdomain_count"`
	Certificate    *Certificate `json:"certificate,omitempty"`
}

// Certificate holds the TLS certificate facts the analyzer inspected.
type Certificate struct {
	Issuer          string `json:"issuer"`
	IsSelfSigned    bool   `json:"is_self_signed"`
	DaysUntilExpiry *int   `json:"days_until_expiry,omitempty"`
}

// Signal is a single threat-intelligence finding for a URL.
type Signal struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
	Remediation string `json:"remediation,omitempty"`
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	Name        string `json:"name"`
}

// Account describes the authenticated user per /auth/me.
type Account struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Stats holds the dashboard aggregates from /stats.
type Stats struct {
	TotalScans int          `json:"total_scans"`
	AvgRisk    float64      `json:"avg_risk"`
	HighRisk   int          `json:"high_risk"`
	Types      []LabelCount `json:"types"`
	Times      []LabelCount `json:"times"`
}

// LabelCount is one point of a categorical series.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistoryEntry is one past scan from /history.
type HistoryEntry struct {
	Filename  string `json:"filename"`
	SHA256    string `json:"sha256"`
	RiskScore int    `json:"risk_score"`
	ScannedAt string `json:"scanned_at"`
}

// errorResponse is the structured error body the analyzer sends on non-2xx.
type errorResponse struct {
	Detail string `json:"detail"`
}

// analyzeResponse captures every spelling the /analyze endpoint has used.
// Pointer fields distinguish absent from zero so defaults are applied in one
// place instead of scattered through callers.
type analyzeResponse struct {
	Message          *string         `json:"message"`
	Filename         *string         `json:"filename"`
	OriginalFilename *string         `json:"original_filename"`
	StoredAs         *string         `json:"stored_as"`
	SHA256           *string         `json:"sha256"`
	Score            *int            `json:"score"`
	RiskScore        *int            `json:"risk_score"`
	Timeline         []TimelineEntry `json:"timeline"`

	// RAW disk image shape
	NumFiles   *int        `json:"num_files"`
	TopFiles   []ImageFile `json:"top_files"`
	Suspicious []string    `json:"suspicious"`
	Hashes     []ImageHash `json:"hashes"`
}

// normalize folds the wire response into the canonical result.
func (r *analyzeResponse) normalize() *AnalysisResult {
	result := &AnalysisResult{
		Message:  stringOr(r.Message, ""),
		SHA256:   stringOr(r.SHA256, ""),
		Timeline: r.Timeline,
	}

	result.OriginalFilename = stringOr(r.OriginalFilename, stringOr(r.Filename, ""))
	result.StoredReference = stringOr(r.StoredAs, "")
	result.RiskScore = intOr(r.RiskScore, intOr(r.Score, 0))

	if r.NumFiles != nil {
		result.Image = &ImageSummary{
			NumFiles:   *r.NumFiles,
			TopFiles:   r.TopFiles,
			Suspicious: r.Suspicious,
			Hashes:     r.Hashes,
		}
	}

	return result
}

// urlAnalyzeResponse captures both spellings of the URL scan response.
type urlAnalyzeResponse struct {
	URL             *string    `json:"url"`
	Score           *int       `json:"score"`
	RiskScore       *int       `json:"risk_score"`
	Category        *string    `json:"category"`
	RiskCategory    *string    `json:"risk_category"`
	Profile         URLProfile `json:"profile"`
	Signals         []Signal   `json:"signals"`
	Recommendations []string   `json:"recommendations"`
}

func (r *urlAnalyzeResponse) normalize(requestedURL string) *URLAnalysisResult {
	result := &URLAnalysisResult{
		URL:             stringOr(r.URL, requestedURL),
		RiskScore:       intOr(r.RiskScore, intOr(r.Score, 0)),
		RiskCategory:    stringOr(r.RiskCategory, stringOr(r.Category, "uncategorized")),
		Profile:         r.Profile,
		Signals:         r.Signals,
		Recommendations: r.Recommendations,
	}
	if result.Signals == nil {
		result.Signals = []Signal{}
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	return result
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
