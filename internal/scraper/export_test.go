package scraper

// Constructors that point adapters at a test server instead of the live
// directories.

func NewYellWithBaseURL(baseURL string, opts Options) Adapter {
	return newDirectoryAdapter(yellDefinition(baseURL), opts)
}

func NewFreeIndexWithBaseURL(baseURL string, opts Options) Adapter {
	return newDirectoryAdapter(freeIndexDefinition(baseURL), opts)
}

func NewThomsonLocalWithBaseURL(baseURL string, opts Options) Adapter {
	return newDirectoryAdapter(thomsonDefinition(baseURL), opts)
}

func NewYelpUKWithBaseURL(baseURL string, opts Options) Adapter {
	return newDirectoryAdapter(yelpDefinition(baseURL), opts)
}

func NewGoogleMapsWithBaseURL(baseURL string, opts Options) Adapter {
	return &googleAdapter{baseURL: baseURL, opts: opts.withDefaults()}
}
