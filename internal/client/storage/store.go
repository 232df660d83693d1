package storage

// Store объединяет все хранилища клиента
type Store interface {
	RecordStorage
	OperationStorage
	QueueStorage
	MetadataStorage
	AuthStorage
	Close() error
}
