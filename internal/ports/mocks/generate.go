//go:generate mockgen -source=../order_repository.go   -destination=./mock_order_repository.go   -package=mocks
//go:generate mockgen -source=../order_cache.go        -destination=./mock_order_cache.go        -package=mocks
//go:generate mockgen -source=../cart_validator.go     -destination=./mock_cart_validator.go     -package=mocks
//go:generate mockgen -source=../payment_gateway.go    -destination=./mock_payment_gateway.go    -package=mocks
//go:generate mockgen -source=../event_publisher.go    -destination=./mock_event_publisher.go    -package=mocks
//go:generate mockgen -source=../product_repository.go -destination=./mock_product_repository.go -package=mocks -aux_files=ports=../catalog_reader.go
//go:generate mockgen -source=../catalog_reader.go     -destination=./mock_catalog_reader.go     -package=mocks
//go:generate mockgen -source=../product_validator.go  -destination=./mock_product_validator.go  -package=mocks
//go:generate mockgen -source=../order_read_service.go -destination=./mock_order_read_service.go -package=mocks

package mocks
