package studentcourses

import (
	"context"
	"errors"
	"fmt"
	"gpacalc/internal/components/assert"
	"gpacalc/internal/components/telemetry"
	"gpacalc/lib/restyutil"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_client_fetch = "client.fetch"
)

const (
	// the api is only ever asked for a single page
	PageSize = 150

	DefaultConnectTimeout = time.Second * 10
	DefaultRequestTimeout = time.Second * 30
)

var tracer = otel.Tracer("gpacalc/studentcourses")

type ClientOptions struct {
	// the student courses endpoint, ex. http://host/api/student-courses
	BaseUrl string
	Token   string

	// zero means the default
	ConnectTimeout time.Duration
	// zero means the default
	RequestTimeout time.Duration

	// if set, the raw text of every exchange is written to it
	DumpOutput restyutil.InstrumentOutput
}

type Response struct {
	StatusCode int
	Body       string
}

type Client struct {
	baseUrl string
	http    *resty.Client
	tel     telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel, "studentcourses: telemetry api")
	tel = telemetry.NewScopedAPI("studentcourses", tel)

	if opts.Token == "" {
		return nil, errors.New("studentcourses: bearer token must not be empty")
	}
	parsedBaseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("studentcourses: parse base url: %w", err)
	}
	if (parsedBaseUrl.Scheme != "http" && parsedBaseUrl.Scheme != "https") || parsedBaseUrl.Host == "" {
		return nil, fmt.Errorf("studentcourses: base url must be an absolute http(s) url, got '%s'", opts.BaseUrl)
	}
	if parsedBaseUrl.RawQuery != "" {
		return nil, fmt.Errorf("studentcourses: base url must not carry a query string, got '%s'", opts.BaseUrl)
	}

	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: time.Second * 30,
	}
	httpClient := resty.New()
	httpClient.SetTransport(&http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: connectTimeout,
	})
	httpClient.SetTimeout(requestTimeout)
	// a 3xx is handed back as is and fails Fetch like any other non-200
	httpClient.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	httpClient.SetAuthToken(opts.Token)
	httpClient.SetHeader("Content-Type", "application/json")
	httpClient.SetHeader("Accept", "application/json")

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.DumpExchanges(httpClient, opts.DumpOutput)

	return &Client{
		baseUrl: opts.BaseUrl,
		http:    httpClient,
		tel:     tel,
	}, nil
}

// Fetch makes exactly one request for the given student's course records and
// returns the raw body, it never retries.
func (c *Client) Fetch(ctx context.Context, studentId string) (Response, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	if studentId == "" {
		span.SetStatus(codes.Error, "empty student id")
		return Response{}, errors.New("studentcourses: student id must not be empty")
	}
	span.SetAttributes(attribute.String("student_id", studentId))

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("size", strconv.Itoa(PageSize)).
		SetQueryParam("studentId.equals", studentId).
		SetQueryParam("includeWithdraw.equals", "true").
		Get(c.baseUrl)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		return Response{}, &TransportError{Url: c.baseUrl, Err: err}
	}

	out := Response{
		StatusCode: res.StatusCode(),
		Body:       string(res.Body()),
	}
	if out.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected status")
		c.tel.ReportBroken(report_client_fetch, out.StatusCode)
		return out, &RequestFailedError{
			StatusCode: out.StatusCode,
			Body:       out.Body,
		}
	}

	c.tel.ReportDebug("fetched student courses", len(out.Body))
	return out, nil
}
