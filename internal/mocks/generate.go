package mocks

//go:generate mockery --name Sink --srcpkg github.com/aevon-lab/overseer/internal/core/sink --output ./sink --outpkg sinkmocks --with-expecter
//go:generate mockery --name Supervisor --srcpkg github.com/aevon-lab/overseer/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
