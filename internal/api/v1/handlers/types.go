package handlers

type Slug string

const (
	SuccessSlug      Slug = "success"
	ErrorSlug        Slug = "error"
	InvalidInputSlug Slug = "invalid-input"
	UnavailableSlug  Slug = "service-unavailable"
	UpstreamSlug     Slug = "upstream-error"
	ServerErrorSlug  Slug = "server-error"
)

type Response struct {
	Slug  Slug        `json:"slug"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

func errInvalidInput(msg string) Response {
	return Response{
		Slug:  InvalidInputSlug,
		Error: msg,
	}
}

func errUnavailable(msg string) Response {
	return Response{
		Slug:  UnavailableSlug,
		Error: msg,
	}
}

func errUpstream(msg string) Response {
	return Response{
		Slug:  UpstreamSlug,
		Error: msg,
	}
}

func errServer(msg string) Response {
	return Response{
		Slug:  ServerErrorSlug,
		Error: msg,
	}
}
