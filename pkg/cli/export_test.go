package cli

var (
	WriteResultForTest = writeResult
)
