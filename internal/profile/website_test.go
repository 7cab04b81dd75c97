package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rfp-proposal/internal/ingestion"
	"github.com/jonathan/rfp-proposal/internal/llm"
	"github.com/jonathan/rfp-proposal/internal/types"
)

const aboutPage = `<html><head><title>Acme Trading</title></head><body>
<h1>من نحن</h1>
<p>شركة أكمي للتجارة رائدة في أعمال الصيانة والتشغيل.</p>
<section class="why-us"><h2>لماذا نحن</h2><ul><li>فريق هندسي معتمد</li></ul></section>
</body></html>`

const contactPage = `<html><body>
<h2>تواصل معنا</h2>
<a href="tel:0501234567">اتصل بنا</a>
</body></html>`

func newCompanySite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		var sb strings.Builder
		sb.WriteString("<urlset>")
		for _, p := range []string{"/about", "/contact", "/missing"} {
			_, _ = fmt.Fprintf(&sb, "<url><loc>%s%s</loc></url>", srv.URL, p)
		}
		sb.WriteString("</urlset>")
		_, _ = w.Write([]byte(sb.String()))
	})
	for path, body := range pages {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(body))
		})
	}
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type fakeRenderer struct {
	pages    map[string]string
	rendered []string
}

func (f *fakeRenderer) Render(_ context.Context, url string) (string, error) {
	f.rendered = append(f.rendered, url)
	for suffix, body := range f.pages {
		if strings.HasSuffix(url, suffix) {
			return body, nil
		}
	}
	return "", errors.New("not rendered")
}

func TestFromWebsite_MergesDraftWithScrapedData(t *testing.T) {
	srv := newCompanySite(t, map[string]string{"/about": aboutPage, "/contact": contactPage})

	var prompt string
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, p string, tier llm.ModelTier) (string, error) {
			prompt = p
			assert.Equal(t, llm.TierStandard, tier)
			return "```json\n" + `{"اسم_الشركة": "شركة أكمي", "الخدمات": ["صيانة"], "لماذا_نحن": ["فريق هندسي معتمد."]}` + "\n```", nil
		},
	}

	p, err := FromWebsite(context.Background(), client, srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, "شركة أكمي", p.CompanyName)
	assert.Equal(t, "Acme Trading", p.EnglishName)
	assert.Equal(t, []string{"صيانة"}, p.Services)
	assert.Equal(t, []string{"فريق هندسي معتمد."}, p.WhyUs)
	assert.Equal(t, []string{"+966501234567"}, p.Contact.Phones)
	assert.Equal(t, []string{types.NotAvailable}, p.Contact.Emails)
	assert.Equal(t, types.NotAvailable, p.Vision)
	assert.Len(t, p.Sources, 2)

	assert.Contains(t, prompt, "شركة أكمي للتجارة رائدة")
	assert.Contains(t, prompt, `"Acme Trading"`)
}

func TestFromWebsite_RendersContactPageWhenNoEmail(t *testing.T) {
	srv := newCompanySite(t, map[string]string{"/about": aboutPage, "/contact": contactPage})
	renderer := &fakeRenderer{pages: map[string]string{
		"/contact": `<html><body><a href="mailto:Info@Acme.sa">راسلنا</a></body></html>`,
	}}

	p, err := FromWebsite(context.Background(), &MockLLMClient{}, srv.URL, &WebsiteOptions{
		JSRender: true,
		Renderer: renderer,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/contact"}, renderer.rendered)
	assert.Equal(t, []string{"info@acme.sa"}, p.Contact.Emails)
}

func TestFromWebsite_NoReadablePages(t *testing.T) {
	srv := newCompanySite(t, nil)

	_, err := FromWebsite(context.Background(), &MockLLMClient{}, srv.URL, nil)
	var emptyErr *ingestion.EmptyDocumentError
	require.ErrorAs(t, err, &emptyErr)
}

func TestFromWebsite_ServiceFailureSurfaces(t *testing.T) {
	srv := newCompanySite(t, map[string]string{"/about": aboutPage})
	callErr := &llm.CallError{Model: "mock", Message: "quota"}
	client := &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "", callErr
		},
	}

	_, err := FromWebsite(context.Background(), client, srv.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, callErr)
}

func TestFromWebsite_MalformedDraftStillCoerced(t *testing.T) {
	srv := newCompanySite(t, map[string]string{"/about": aboutPage})
	client := &MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "sorry, I cannot help", nil
		},
	}

	p, err := FromWebsite(context.Background(), client, srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, types.NotAvailable, p.CompanyName)
	assert.Equal(t, []string{"فريق هندسي معتمد"}, p.WhyUs)
}

func TestWithWebsiteDefaults_CapsPages(t *testing.T) {
	o := withWebsiteDefaults(&WebsiteOptions{MaxPages: 500})
	assert.Equal(t, HardMaxPages, o.MaxPages)
	assert.NotNil(t, o.Fetcher)
	assert.Nil(t, o.Renderer)

	o = withWebsiteDefaults(nil)
	assert.Equal(t, DefaultMaxPages, o.MaxPages)
	assert.Equal(t, DefaultMaxTextRunes, o.MaxTextRunes)
}

func TestFromPDF_TextDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.txt")
	content := "شركة أكمي للمقاولات\nجوال: 0551112222\nالبريد: contact@acme.sa\nالموقع https://acme.sa"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, p string, _ llm.ModelTier) (string, error) {
			assert.NotContains(t, p, "https://acme.sa")
			return `{"اسم_الشركة": "شركة أكمي للمقاولات", "نبذة_عن_الشركة": "مقاولات عامة https://acme.sa"}`, nil
		},
	}

	p, err := FromPDF(context.Background(), client, path, nil)
	require.NoError(t, err)

	assert.Equal(t, "شركة أكمي للمقاولات", p.CompanyName)
	assert.Equal(t, "مقاولات عامة", p.About)
	assert.Equal(t, []string{"+966551112222"}, p.Contact.Phones)
	assert.Equal(t, []string{"contact@acme.sa"}, p.Contact.Emails)
	require.Len(t, p.Sources, 1)
	assert.Equal(t, path, p.Sources[0].URL)
}
