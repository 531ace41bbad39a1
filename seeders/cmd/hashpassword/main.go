// hashpassword imprime o hash bcrypt de uma senha, para cadastrar usuários
// direto no Redis.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		password = strings.TrimSpace(line)
	}
	if len(password) < 6 {
		log.Fatal("a senha deve ter ao menos 6 caracteres")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("erro ao gerar o hash: %v", err)
	}
	fmt.Println(string(hashed))
}
