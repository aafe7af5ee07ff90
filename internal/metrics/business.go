package metrics

// Upload outcomes
const (
	OutcomeMirrored     = "mirrored"
	OutcomeMetadataOnly = "metadata_only"
)

// Login results
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardCreatedTotal.Inc()
	})
}

func (m *Metrics) IncrementCardMoved() {
	m.safeExecute("IncrementCardMoved", func() {
		m.CardMovedTotal.Inc()
	})
}

// RecordUpload counts one finished upload by mirror outcome.
func (m *Metrics) RecordUpload(outcome string) {
	m.safeExecute("RecordUpload", func() {
		m.UploadsProcessed.WithLabelValues(outcome).Inc()
	})
}

func (m *Metrics) RecordLogin(result string) {
	m.safeExecute("RecordLogin", func() {
		m.LoginAttemptsTotal.WithLabelValues(result).Inc()
	})
}

func (m *Metrics) AddStagedFilesRemoved(n int) {
	m.safeExecute("AddStagedFilesRemoved", func() {
		m.StagedFilesRemoved.Add(float64(n))
	})
}

func (m *Metrics) AddSessionsSwept(n int) {
	m.safeExecute("AddSessionsSwept", func() {
		m.SessionsSweptTotal.Add(float64(n))
	})
}

func (m *Metrics) SetCardsTotal(count int64) {
	m.safeExecute("SetCardsTotal", func() {
		m.CardsTotal.Set(float64(count))
	})
}

func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

func (m *Metrics) SetUploadsTotal(count int64) {
	m.safeExecute("SetUploadsTotal", func() {
		m.UploadsTotal.Set(float64(count))
	})
}
