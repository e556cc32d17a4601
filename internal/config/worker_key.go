package config

type WorkerKeyStruct struct {
	RenderReportsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	RenderReportsQueue: "render_reports_queue",
}
