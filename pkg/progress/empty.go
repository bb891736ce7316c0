package progress

type emptyReporter struct {
}

func NewEmptyReporter() Reporter {
	return &emptyReporter{}
}

func (c *emptyReporter) Close() error {
	return nil
}

func (c *emptyReporter) Start(method string, url string) {
}

func (c *emptyReporter) Done() {
}

var _ Reporter = &emptyReporter{}
