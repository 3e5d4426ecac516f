package mocks

//go:generate mockery --name FilterStore --srcpkg github.com/aevon-lab/faultline/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
