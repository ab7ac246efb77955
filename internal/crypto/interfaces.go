package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_service_mock.go -package=mock

// CipherService отвечает за всю локальную криптографию клиента.
// Он не знает ничего о сети, хранилище или мерчантах.
// Его единственная задача — выводить ключи и запечатывать данные.
//
// Схема работы:
//
//	Salt = GenerateSalt()                        (Шаг 1)
//	Key  = DeriveKey(masterSecret, salt, iters)  (Шаг 2)
//	Ct, Nonce = Seal(key, plaintext)             (Шаг 3)
//	plaintext = Open(key, ct, nonce)             (Шаг 4)
type CipherService interface {
	// GenerateSalt генерирует случайную соль (16 байт / 128 бит).
	// Соль не является секретом — она хранится рядом с шифртекстом.
	// Нужна для того, чтобы одинаковые секреты давали разные ключи.
	// Шаг 1.
	GenerateSalt() ([]byte, error)

	// DeriveKey выводит 256-битный ключ из секрета и соли через Argon2id.
	// iterations задаёт параметр времени; ноль выбирает значение по
	// умолчанию. Результат детерминирован и существует только в памяти.
	// Шаг 2.
	DeriveKey(secret, salt []byte, iterations uint32) []byte

	// Seal encrypts plaintext with key using AES-256-GCM. A fresh random
	// 96-bit nonce is generated per call and returned separately so the
	// caller can persist it next to the ciphertext. Returns an error if
	// cipher creation or the random nonce read fails.
	Seal(key, plaintext []byte) (ciphertext, nonce []byte, err error)

	// Open decrypts ciphertext with key and nonce, verifying the GCM
	// authentication tag. Returns [ErrAuthFailure] (wrapped) if the data was
	// tampered with or sealed under a different key; plaintext is never
	// partially returned.
	Open(key, ciphertext, nonce []byte) ([]byte, error)

	// SealJSON serializes data to JSON and seals it with key. Returns the
	// ciphertext and nonce like Seal.
	SealJSON(data any, key []byte) (ciphertext, nonce []byte, err error)

	// OpenJSON opens the ciphertext like Open and unmarshals the resulting
	// JSON into target. target must be a non-nil pointer, identical to the
	// requirement of [encoding/json.Unmarshal].
	OpenJSON(ciphertext, nonce, key []byte, target any) error
}
